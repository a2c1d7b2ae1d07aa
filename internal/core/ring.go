package core

import "github.com/dkeye/webring/internal/domain"

// FindMember returns the first member with the given id.
func FindMember(members []domain.Member, id string) (domain.Member, bool) {
	i := indexOf(members, id)
	if i < 0 {
		return domain.Member{}, false
	}
	return members[i], true
}

// Adjacent returns the circular neighbors of id in ring order.
// A single-member ring is its own prev and next.
func Adjacent(members []domain.Member, id string) (prev, next domain.Member, ok bool) {
	n := len(members)
	if n == 0 {
		return domain.Member{}, domain.Member{}, false
	}
	i := indexOf(members, id)
	if i < 0 {
		return domain.Member{}, domain.Member{}, false
	}
	return members[(i-1+n)%n], members[(i+1)%n], true
}

func indexOf(members []domain.Member, id string) int {
	for i := range members {
		if members[i].ID == id {
			return i
		}
	}
	return -1
}

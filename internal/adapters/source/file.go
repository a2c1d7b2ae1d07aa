package source

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"time"

	"github.com/goccy/go-yaml"

	"github.com/dkeye/webring/internal/domain"
)

// File reads members from a YAML (or JSON) document on each call, so edits
// show up without a restart. The document is either a list of members or a
// mapping with a "members" key.
type File struct {
	path string
}

func NewFile(path string) *File {
	return &File{path: path}
}

func (f *File) Members(ctx context.Context) ([]domain.Member, error) {
	defer observe(KindFile, time.Now())
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("read members file: %w", err)
	}
	members, err := decodeMembers(data)
	if err != nil {
		return nil, fmt.Errorf("decode members file %s: %w", f.path, err)
	}
	return members, nil
}

func decodeMembers(data []byte) ([]domain.Member, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return []domain.Member{}, nil
	}
	var members []domain.Member
	if err := yaml.Unmarshal(data, &members); err == nil {
		return nonNil(members), nil
	}
	var doc struct {
		Members []domain.Member `yaml:"members"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, err
	}
	return nonNil(doc.Members), nil
}

func nonNil(members []domain.Member) []domain.Member {
	if members == nil {
		return []domain.Member{}
	}
	return members
}

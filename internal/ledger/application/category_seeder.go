package application

import (
	_ "embed"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/minarae/accountbook-backend/internal/ledger/domain"
)

//go:embed categories.json
var defaultCatalogJSON []byte

type catalogEntry struct {
	Name      string   `json:"category_name"`
	InOutType string   `json:"inout_type"`
	ClassName *string  `json:"class_name"`
	SortOrder int      `json:"sort_order"`
	Children  []string `json:"children"`
}

// SeedDefaultCategories installs the default catalog for a new member.
// Each root insert is its own commit boundary; the children of one root are
// inserted concurrently and joined before the next root is handled, so the
// first failure aborts the remaining batch but keeps already-seeded roots.
func (s *CategoryService) SeedDefaultCategories(memberNo int) error {
	var catalog []catalogEntry
	if err := json.Unmarshal(defaultCatalogJSON, &catalog); err != nil {
		return fmt.Errorf("could not read default category catalog: %v", err)
	}

	for _, entry := range catalog {
		root := &domain.Category{
			MemberNo:    &memberNo,
			Name:        entry.Name,
			InOutType:   entry.InOutType,
			HasChildren: len(entry.Children) > 0,
			ClassName:   entry.ClassName,
			SortOrder:   entry.SortOrder,
		}
		if err := s.repo.Insert(root); err != nil {
			return fmt.Errorf("could not seed category %q: %v", entry.Name, err)
		}

		var group errgroup.Group
		for index, childName := range entry.Children {
			sortOrder := index + 1
			name := childName
			group.Go(func() error {
				child := &domain.Category{
					MemberNo:  &memberNo,
					Name:      name,
					InOutType: entry.InOutType,
					ParentNo:  &root.CategoryNo,
					SortOrder: sortOrder,
				}
				return s.repo.Insert(child)
			})
		}
		if err := group.Wait(); err != nil {
			return fmt.Errorf("could not seed children of %q: %v", entry.Name, err)
		}
	}

	return nil
}

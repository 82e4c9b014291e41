package port

import "cvrank/internal/domain"

// DocumentLister lists the candidate documents of a directory.
type DocumentLister interface {
	List(root string) ([]domain.DocumentRef, error)
}

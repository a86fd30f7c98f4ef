package browse

import (
	"strings"

	"rdrive/internal/app/files"
)

// CategoryAll disables category filtering.
const CategoryAll = "All"

// Categories lists the selectable filter categories in display order.
var Categories = []string{
	CategoryAll,
	files.CategoryDocuments,
	files.CategoryPhotos,
	files.CategoryVideos,
	files.CategoryAudio,
	files.CategoryOthers,
}

// Stats summarizes the current listing.
type Stats struct {
	TotalSize int64
	FileCount int
}

// State holds everything the listing UI renders: the loaded objects, the
// active filters, the current selection, and modal visibility. It is a
// value; Update returns the next state and never mutates its input.
type State struct {
	Files []files.Object
	Stats Stats

	SearchTerm string
	Category   string

	Selected          *files.Object
	ShareURL          string
	ShowShareModal    bool
	ShowDeleteConfirm bool
}

// NewState returns the initial UI state.
func NewState() State {
	return State{Category: CategoryAll}
}

// Event is a UI state transition input.
type Event interface{ isEvent() }

// FilesLoaded replaces the listing (after a fetch or refresh).
type FilesLoaded struct{ Files []files.Object }

// FetchFailed clears the listing after a failed fetch.
type FetchFailed struct{}

// SearchChanged updates the search filter.
type SearchChanged struct{ Term string }

// CategoryChanged updates the category filter.
type CategoryChanged struct{ Category string }

// FileSelected opens the detail view for one object (nil deselects).
type FileSelected struct{ File *files.Object }

// ShareReady opens the share modal with the generated link.
type ShareReady struct{ URL string }

// ShareDismissed closes the share modal.
type ShareDismissed struct{}

// DeleteRequested opens the delete confirmation for the selection.
type DeleteRequested struct{}

// DeleteDismissed closes the delete confirmation.
type DeleteDismissed struct{}

// FileDeleted removes the key from the listing and clears the selection.
type FileDeleted struct{ Key string }

func (FilesLoaded) isEvent()     {}
func (FetchFailed) isEvent()     {}
func (SearchChanged) isEvent()   {}
func (CategoryChanged) isEvent() {}
func (FileSelected) isEvent()    {}
func (ShareReady) isEvent()      {}
func (ShareDismissed) isEvent()  {}
func (DeleteRequested) isEvent() {}
func (DeleteDismissed) isEvent() {}
func (FileDeleted) isEvent()     {}

// Update is the single reducer for the UI state.
func Update(s State, e Event) State {
	switch ev := e.(type) {
	case FilesLoaded:
		s.Files = ev.Files
		s.Stats = statsOf(ev.Files)

	case FetchFailed:
		s.Files = nil
		s.Stats = Stats{}

	case SearchChanged:
		s.SearchTerm = ev.Term

	case CategoryChanged:
		if ev.Category == "" {
			ev.Category = CategoryAll
		}
		s.Category = ev.Category

	case FileSelected:
		s.Selected = ev.File

	case ShareReady:
		s.ShareURL = ev.URL
		s.ShowShareModal = true

	case ShareDismissed:
		s.ShareURL = ""
		s.ShowShareModal = false

	case DeleteRequested:
		if s.Selected != nil {
			s.ShowDeleteConfirm = true
		}

	case DeleteDismissed:
		s.ShowDeleteConfirm = false

	case FileDeleted:
		kept := make([]files.Object, 0, len(s.Files))
		for _, o := range s.Files {
			if o.Key != ev.Key {
				kept = append(kept, o)
			}
		}
		s.Files = kept
		s.Stats = statsOf(kept)
		s.Selected = nil
		s.ShowDeleteConfirm = false
	}

	return s
}

// Visible applies the search and category filters to the loaded listing.
func (s State) Visible() []files.Object {
	term := strings.ToLower(s.SearchTerm)

	visible := make([]files.Object, 0, len(s.Files))
	for _, o := range s.Files {
		if term != "" && !strings.Contains(strings.ToLower(o.Key), term) {
			continue
		}
		if s.Category != CategoryAll && files.Category(o) != s.Category {
			continue
		}
		visible = append(visible, o)
	}
	return visible
}

func statsOf(objects []files.Object) Stats {
	st := Stats{FileCount: len(objects)}
	for _, o := range objects {
		st.TotalSize += o.Size
	}
	return st
}

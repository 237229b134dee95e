package app

import (
	"github.com/dshills/quickdoc/internal/docs"
	"github.com/dshills/quickdoc/internal/hover"
	"github.com/dshills/quickdoc/internal/symbols"
	"github.com/dshills/quickdoc/internal/viewport"
)

// session is everything shared by the views of one opened file: its
// element index and the presenter that shows its documentation.
type session struct {
	doc       *viewport.Document
	index     symbols.Index
	presenter *docs.Presenter
	views     int
}

func (s *session) Resolver() hover.ElementResolver { return s.index }
func (s *session) Presenter() hover.Presenter      { return s.presenter }

// sessionOf returns the app session behind a view, if any.
func sessionOf(v *viewport.View) *session {
	if v == nil {
		return nil
	}
	s, _ := v.Session().(*session)
	return s
}

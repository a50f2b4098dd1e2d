package web

import (
	"github.com/padraicbc/playcall/game"
	"github.com/padraicbc/playcall/models"
)

// Page is the data both screens render from.
type Page struct {
	State            game.State
	History          game.History
	PlayTypes        []models.Option
	Outcomes         []models.Option
	SelectedPlayType string
	SelectedResult   string
	Error            string
}

// NewPage projects a shell snapshot into template data.
func NewPage(st game.State) Page {
	return Page{
		State:            st,
		History:          game.NewHistory(st.Records),
		PlayTypes:        models.PlayTypes(),
		Outcomes:         models.Outcomes(),
		SelectedPlayType: string(st.Selection.PlayType),
		SelectedResult:   string(st.Selection.Result),
	}
}

// Template returns the template for the view the state is in.
func (p Page) Template() string {
	if p.State.View == game.ViewHistory {
		return "history.html"
	}
	return "entry.html"
}

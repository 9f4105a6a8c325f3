package cli

import (
	"fmt"
	"io"

	"github.com/helpdesklite/ticketgrid/internal/grid"
	"github.com/helpdesklite/ticketgrid/internal/ticket"
)

// gridDoc is the JSON payload for a rendered grid page.
type gridDoc struct {
	Page       int             `json:"page"`
	TotalPages int             `json:"totalPages"`
	TotalCount int             `json:"totalCount"`
	Tickets    []ticket.Ticket `json:"tickets"`
}

// newGridDoc converts an engine snapshot to its JSON payload.
func newGridDoc(snap grid.State) gridDoc {
	tickets := make([]ticket.Ticket, 0, len(snap.Data))
	for _, r := range snap.Data {
		tickets = append(tickets, ticket.FromRecord(r))
	}
	return gridDoc{
		Page:       snap.CurrentPage,
		TotalPages: snap.TotalPages,
		TotalCount: snap.TotalCount,
		Tickets:    tickets,
	}
}

// renderGrid writes the text form of an engine snapshot: one line per
// ticket plus a paging footer, or the empty-state message when there
// is nothing to show.
func renderGrid(w io.Writer, snap grid.State) {
	if snap.Phase == grid.PhaseFailed {
		fmt.Fprintln(w, snap.Message)
		return
	}
	if len(snap.Data) == 0 {
		fmt.Fprintln(w, "no tickets to show")
		return
	}

	for _, r := range snap.Data {
		t := ticket.FromRecord(r)
		fmt.Fprintf(w, "%s  %s  %s <%s>  %s\n", t.ID, t.DateCreated, t.FullName, t.Email, t.Subject)
	}

	pages := snap.TotalPages
	if pages < 1 {
		pages = 1
	}
	fmt.Fprintf(w, "page %d of %d (%d tickets)\n", snap.CurrentPage, pages, snap.TotalCount)
}

// renderTicket writes the text form of one ticket.
func renderTicket(w io.Writer, t ticket.Ticket) {
	fmt.Fprintf(w, "id:      %s\n", t.ID)
	fmt.Fprintf(w, "created: %s\n", t.DateCreated)
	fmt.Fprintf(w, "from:    %s <%s>\n", t.FullName, t.Email)
	fmt.Fprintf(w, "subject: %s\n", t.Subject)
	fmt.Fprintf(w, "message: %s\n", t.Message)
}

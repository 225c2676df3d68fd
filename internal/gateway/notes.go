package gateway

import (
	"context"
	"fmt"
	"net/http"

	"github.com/ichaoui56/sonic-courier/internal/entities"
)

// NoteInput is the courier-authored content of a delivery note.
type NoteInput struct {
	Content string
	Private bool
}

// Notes lists the delivery notes visible to this courier on an order.
func (g *Gateway) Notes(ctx context.Context, token string, orderID int64) ([]entities.DeliveryNote, error) {
	var out notesResponse
	err := g.do(ctx, call{
		op:     "notes",
		method: http.MethodGet,
		path:   fmt.Sprintf("/api/mobile/orders/%d/note", orderID),
		token:  token,
		out:    &out,
	})
	if err != nil {
		return nil, err
	}
	if out.Notes == nil {
		return nil, fmt.Errorf("%w: missing notes field", ErrUnexpectedResponse)
	}
	notes := make([]entities.DeliveryNote, 0, len(out.Notes))
	for _, m := range out.Notes {
		notes = append(notes, noteToEntity(m))
	}
	return notes, nil
}

// CreateNote attaches a note to an order.
func (g *Gateway) CreateNote(ctx context.Context, token string, orderID int64, input NoteInput) (entities.DeliveryNote, error) {
	var out noteResponse
	err := g.do(ctx, call{
		op:     "create_note",
		method: http.MethodPost,
		path:   fmt.Sprintf("/api/mobile/orders/%d/note", orderID),
		token:  token,
		body:   noteRequest{Content: input.Content, IsPrivate: input.Private},
		out:    &out,
	})
	if err != nil {
		return entities.DeliveryNote{}, err
	}
	return noteToEntity(*out.Note), nil
}

// UpdateNote rewrites a note the courier authored.
func (g *Gateway) UpdateNote(ctx context.Context, token string, orderID, noteID int64, input NoteInput) (entities.DeliveryNote, error) {
	var out noteResponse
	err := g.do(ctx, call{
		op:     "update_note",
		method: http.MethodPut,
		path:   fmt.Sprintf("/api/mobile/orders/%d/note/%d", orderID, noteID),
		token:  token,
		body:   noteRequest{Content: input.Content, IsPrivate: input.Private},
		out:    &out,
	})
	if err != nil {
		return entities.DeliveryNote{}, err
	}
	return noteToEntity(*out.Note), nil
}

// DeleteNote removes a note the courier authored.
func (g *Gateway) DeleteNote(ctx context.Context, token string, orderID, noteID int64) error {
	return g.do(ctx, call{
		op:     "delete_note",
		method: http.MethodDelete,
		path:   fmt.Sprintf("/api/mobile/orders/%d/note/%d", orderID, noteID),
		token:  token,
	})
}

package tracing

import (
	"strings"

	"github.com/KomalYerkal/Preparation-of-Soap/instrumentation/hooking"
	"github.com/KomalYerkal/Preparation-of-Soap/lab"
	"github.com/KomalYerkal/Preparation-of-Soap/timing"
)

// LabTracer converts the hooks of one lab into Records.
type LabTracer struct {
	session string
	clock   timing.TimeTeller
	writer  Writer
}

// NewLabTracer creates a tracer that stamps records with session and the
// time told by clock.
func NewLabTracer(session string, clock timing.TimeTeller, w Writer) *LabTracer {
	return &LabTracer{session: session, clock: clock, writer: w}
}

// Func records ctx if its item is a mixture view.
func (t *LabTracer) Func(ctx hooking.HookCtx) {
	view, ok := ctx.Item.(lab.MixtureView)
	if !ok {
		return
	}

	names := make([]string, 0, len(view.Ingredients))
	for _, i := range view.Ingredients {
		names = append(names, i.String())
	}

	t.writer.Write(Record{
		Session:     t.session,
		Pos:         ctx.Pos.Name,
		Time:        t.clock.CurrentTime(),
		Status:      view.Status,
		Fill:        view.FillHeightPercent,
		Ingredients: strings.Join(names, ","),
		Generation:  view.Generation,
		Revision:    view.Revision,
	})
}

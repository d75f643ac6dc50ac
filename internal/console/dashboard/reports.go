package dashboard

import (
	"context"
	"errors"
	"fmt"

	"github.com/nnsolutions/isms/internal/console/client"
	"github.com/nnsolutions/isms/internal/console/reportform"
)

// ReportMode is the presentation of a report view.
type ReportMode string

const (
	ModeList ReportMode = "list"
	ModeForm ReportMode = "form"
)

// ReportsState is the shared daily/weekly report board.
type ReportsState struct {
	Daily  []client.Report
	Weekly []client.Report
	Mode   ReportMode
	Form   reportform.Form
	Error  string
}

// reportBoard holds report lists and drafts. Callers hold base.mu.
type reportBoard struct {
	daily  []client.Report
	weekly []client.Report
	mode   ReportMode
	active client.ReportKind
	drafts map[client.ReportKind]*reportform.Form
	err    string
}

func newReportBoard() reportBoard {
	return reportBoard{mode: ModeList, active: client.Daily, drafts: map[client.ReportKind]*reportform.Form{}}
}

func (r *reportBoard) set(kind client.ReportKind, reports []client.Report) {
	if kind == client.Weekly {
		r.weekly = reports
		return
	}
	r.daily = reports
}

func (r *reportBoard) add(kind client.ReportKind, report client.Report) {
	if kind == client.Weekly {
		r.weekly = append(clone(r.weekly), report)
		return
	}
	r.daily = append(clone(r.daily), report)
}

func (r *reportBoard) remove(kind client.ReportKind, id string) {
	list := r.daily
	if kind == client.Weekly {
		list = r.weekly
	}
	out := make([]client.Report, 0, len(list))
	for _, rep := range list {
		if rep.ID != id {
			out = append(out, rep)
		}
	}
	r.set(kind, out)
}

func (r *reportBoard) draft(kind client.ReportKind, b *base) *reportform.Form {
	f, ok := r.drafts[kind]
	if !ok {
		nf := reportform.New(kind, b.now())
		nf.Designation = b.sess.Designation
		f = &nf
		r.drafts[kind] = f
	}
	return f
}

func (r *reportBoard) snapshot(b *base) ReportsState {
	s := ReportsState{
		Daily:  clone(r.daily),
		Weekly: clone(r.weekly),
		Mode:   r.mode,
		Error:  r.err,
	}
	if f, ok := r.drafts[r.active]; ok {
		s.Form = *f
	} else {
		s.Form = reportform.New(r.active, b.now())
	}
	return s
}

// loadReports fetches one report list into the board.
func (b *base) loadReports(ctx context.Context, board *reportBoard, kind client.ReportKind) error {
	reports, err := b.api.ListReports(ctx, kind)
	if err != nil {
		return fmt.Errorf("list %s reports: %w", kind, err)
	}
	b.commit(ctx, func() {
		board.set(kind, reports)
		board.err = ""
	})
	return nil
}

// editDraft applies fn to the active draft.
func (b *base) editDraft(board *reportBoard, fn func(*reportform.Form)) {
	b.mu.Lock()
	defer b.mu.Unlock()
	fn(board.draft(board.active, b))
}

// setDraftDate changes the active draft's date. A Sunday is refused with an
// alert and the draft is left as it was.
func (b *base) setDraftDate(board *reportBoard, value string) error {
	b.mu.Lock()
	err := board.draft(board.active, b).SetDate(value)
	b.mu.Unlock()

	if errors.Is(err, reportform.ErrSunday) {
		b.alert.Alert(reportform.SundayMessage)
	}
	return err
}

// submitReport validates the active draft, posts it and, once the server
// has accepted it, appends the returned report and switches to list mode.
// On failure the list and the draft are left untouched.
func (b *base) submitReport(board *reportBoard) error {
	viewCtx, reqCtx := b.actionContext()

	b.mu.RLock()
	kind := board.active
	var form reportform.Form
	if f, ok := board.drafts[kind]; ok {
		form = *f
	} else {
		form = reportform.New(kind, b.now())
	}
	b.mu.RUnlock()

	if err := form.Validate(); err != nil {
		if errors.Is(err, reportform.ErrSunday) {
			b.alert.Alert(reportform.SundayMessage)
		} else {
			b.alert.Alert(err.Error())
		}
		return err
	}

	created, err := b.api.CreateReport(reqCtx, kind, form.Build(b.now(), b.sess.Username))
	if err != nil {
		msg := client.Message(err, MsgReportFailed)
		if client.IsUnreachable(err) {
			msg = MsgUnreachable
		}
		b.log.Warn().Err(err).Str("kind", string(kind)).Msg("report submission failed")
		b.commit(viewCtx, func() { board.err = msg })
		b.alert.Alert(msg)
		return err
	}

	b.commit(viewCtx, func() {
		board.add(kind, *created)
		delete(board.drafts, kind)
		board.mode = ModeList
		board.err = ""
	})
	b.log.Info().Str("kind", string(kind)).Str("report_id", created.ID).Msg("report submitted")
	b.alert.Alert(MsgReportCreated)
	return nil
}

// deleteReport removes a report on the server, then locally.
func (b *base) deleteReport(board *reportBoard, kind client.ReportKind, id string) error {
	viewCtx, reqCtx := b.actionContext()
	if err := b.api.DeleteReport(reqCtx, kind, id); err != nil {
		b.alert.Alert(actionError(err, "Failed to delete report"))
		return err
	}
	b.commit(viewCtx, func() { board.remove(kind, id) })
	return nil
}

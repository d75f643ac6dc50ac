package dashboard

import (
	"context"
	"strings"

	"github.com/nnsolutions/isms/internal/console/client"
	"github.com/nnsolutions/isms/internal/console/reportform"
)

// accountForm drives the create/edit form shared by users and admins.
type accountForm struct {
	noun     string
	listPath string
	create   func(context.Context, client.UserInput) (*client.UserRecord, error)
	update   func(context.Context, client.ID, client.UserInput) (*client.UserRecord, error)
}

// saveAccount creates or updates an account and returns to its list. An
// unreachable backend still returns to the list, then alerts.
func (b *base) saveAccount(f accountForm, editing *client.UserRecord, in client.UserInput) error {
	in.FullName = reportform.TitleCase(in.FullName)
	in.Domain = reportform.TitleCase(in.Domain)

	_, reqCtx := b.actionContext()
	var err error
	verb := "create"
	if editing != nil {
		verb = "update"
		_, err = f.update(reqCtx, editing.ID, in)
	} else {
		_, err = f.create(reqCtx, in)
	}

	if err != nil && !client.IsUnreachable(err) {
		b.alert.Alert(actionError(err, "Failed to "+verb+" "+f.noun))
		return err
	}

	b.Navigate(b.path(f.listPath))

	if err != nil {
		b.log.Warn().Err(err).Str("account", f.noun).Msg("save failed")
		b.alert.Alert(MsgUnreachable)
		return err
	}
	b.alert.Alert(capitalize(f.noun) + " " + verb + "d successfully!")
	return nil
}

// deleteAccount removes an account on the server, then calls drop to remove
// it from local state.
func (b *base) deleteAccount(noun string, del func(context.Context, client.ID) error, id client.ID, drop func()) error {
	viewCtx, reqCtx := b.actionContext()
	if err := del(reqCtx, id); err != nil {
		b.alert.Alert(actionError(err, "Failed to delete "+noun))
		return err
	}
	b.commit(viewCtx, drop)
	b.alert.Alert(capitalize(noun) + " deleted successfully!")
	return nil
}

func withoutID(in []client.UserRecord, id client.ID) []client.UserRecord {
	out := make([]client.UserRecord, 0, len(in))
	for _, u := range in {
		if u.ID != id {
			out = append(out, u)
		}
	}
	return out
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

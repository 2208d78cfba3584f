package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/dmitrijs2005/voicememo/internal/client/models"
	"github.com/dmitrijs2005/voicememo/internal/common"
)

var getMultiline = GetMultiline

// parseCollaborator reads "user" or "user:role". The role defaults to viewer.
func parseCollaborator(s string) (models.CollaboratorInput, error) {
	user, role, found := strings.Cut(s, ":")
	in := models.CollaboratorInput{UserID: user, Role: models.RoleViewer}
	if found {
		in.Role = models.Role(role)
	}
	if in.UserID == "" || !in.Role.Valid() {
		return models.CollaboratorInput{}, fmt.Errorf("collaborator %q: %w", s, common.ErrInvalidArgument)
	}
	return in, nil
}

func (a *App) Share(_ context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	if err := a.requireRecording(args[0]); err != nil {
		return err
	}
	users := make([]models.CollaboratorInput, 0, len(args)-1)
	for _, s := range args[1:] {
		in, err := parseCollaborator(s)
		if err != nil {
			return err
		}
		users = append(users, in)
	}

	sh, err := a.lib.Collaboration.Share(args[0], users)
	if err != nil {
		return err
	}
	a.printShare(sh)
	return nil
}

func (a *App) ChangeRole(_ context.Context, args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	return a.lib.Collaboration.UpdateCollaboratorRole(args[0], args[1], models.Role(args[2]))
}

func (a *App) RemoveCollaborator(_ context.Context, args []string) error {
	if len(args) != 2 {
		return errUsage
	}
	return a.lib.Collaboration.RemoveCollaborator(args[0], args[1])
}

func (a *App) Unshare(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	if err := a.lib.Collaboration.Unshare(args[0]); err != nil {
		return err
	}
	fmt.Fprintln(a.out, "Sharing stopped")
	return nil
}

// ListShared prints the recordings shared with and by the signed-in user.
func (a *App) ListShared(_ context.Context, _ []string) error {
	a.printSharedGroup("Shared with me:", a.lib.Collaboration.RecordingIDsSharedWithMe())
	a.printSharedGroup("Shared by me:", a.lib.Collaboration.RecordingIDsSharedByMe())
	return nil
}

func (a *App) printSharedGroup(title string, ids []string) {
	fmt.Fprintln(a.out, title)
	if len(ids) == 0 {
		fmt.Fprintln(a.out, "  none")
		return
	}
	for _, id := range ids {
		name := "(not in library)"
		if r, ok := a.lib.Recordings.Get(id); ok {
			name = r.Title
		}
		fmt.Fprintf(a.out, "  %s %s\n", id, name)
	}
}

func (a *App) printShare(sh models.SharedRecording) {
	fmt.Fprintf(a.out, "Recording %s shared by %s\n", sh.RecordingID, sh.SharedBy)
	for _, c := range sh.Collaborators {
		fmt.Fprintf(a.out, "  %s %s\n", c.UserID, c.Role)
	}
}

// AddComment takes the comment text from the arguments, or asks for it when
// none is given.
func (a *App) AddComment(_ context.Context, args []string) error {
	fs := newFlagSet("comment", a.out)
	at := fs.Float64("at", 0, "position in seconds")

	pos, err := parseInterspersed(fs, args)
	if err != nil {
		return err
	}
	if len(pos) < 1 {
		return errUsage
	}
	if err := a.requireRecording(pos[0]); err != nil {
		return err
	}

	text := strings.Join(pos[1:], " ")
	if text == "" {
		if text, err = getMultiline(a.reader, "Comment", a.out); err != nil {
			return err
		}
	}

	c, err := a.lib.Collaboration.AddComment(models.NewComment{RecordingID: pos[0], Content: text, Timestamp: *at})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Comment %s added\n", c.ID)
	return nil
}

func (a *App) ListComments(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	items := a.lib.Collaboration.CommentsFor(args[0])
	if len(items) == 0 {
		fmt.Fprintln(a.out, "No comments")
		return nil
	}
	for _, c := range items {
		fmt.Fprintf(a.out, "%s %6s %s: %s\n", c.ID, formatSeconds(c.Timestamp), c.UserID, c.Content)
	}
	return nil
}

func (a *App) EditComment(_ context.Context, args []string) error {
	if len(args) < 2 {
		return errUsage
	}
	return a.lib.Collaboration.UpdateComment(args[0], strings.Join(args[1:], " "))
}

func (a *App) DeleteComment(_ context.Context, args []string) error {
	if len(args) != 1 {
		return errUsage
	}
	return a.lib.Collaboration.DeleteComment(args[0])
}

package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dmitrijs2005/voicememo/internal/client/models"
	"github.com/dmitrijs2005/voicememo/internal/common"
)

const dateLayout = "2006-01-02"

var errUsage = errors.New("wrong arguments, see help")

func (a *App) commands() []command {
	return []command{
		{name: "register", usage: "create an account", run: a.Register},
		{name: "login", usage: "sign in (falls back to offline)", run: a.Login},
		{name: "logout", usage: "[-wipe] sign out", run: a.Logout},
		{name: "whoami", usage: "show the signed-in user", run: a.WhoAmI},

		{name: "add", usage: "<file> [-title T] [-d sec] [-c category] [-tags a,b] [-fav] [-folder F] [-notes N] [-cloud]", run: a.AddRecording},
		{name: "list", usage: "[-q text] [-c a,b] [-tags a,b] [-fav] [-min s] [-max s] [-from d] [-to d] [-storage s]", run: a.ListRecordings},
		{name: "show", usage: "<id> show a recording", run: a.ShowRecording},
		{name: "edit", usage: "<id> [-title] [-notes] [-c] [-tags] [-d] [-storage] [-text]", run: a.EditRecording},
		{name: "fav", usage: "<id> toggle favorite", run: a.ToggleFavorite},
		{name: "rm", usage: "<id> delete a recording", run: a.DeleteRecording},
		{name: "tags", usage: "list tags in use", run: a.ListTags},
		{name: "categories", usage: "list categories in use", run: a.ListCategories},
		{name: "mark", usage: "<id> -at sec -label L [-note N] add a marker", run: a.AddMarker},
		{name: "editmark", usage: "<id> <marker> [-at] [-label] [-note]", run: a.EditMarker},
		{name: "unmark", usage: "<id> <marker> delete a marker", run: a.DeleteMarker},

		{name: "mkdir", usage: "<name> [-parent P] [-color C] [-icon I]", run: a.CreateFolder},
		{name: "folders", usage: "show the folder tree", run: a.FolderTree},
		{name: "ls", usage: "<folder> show a folder", run: a.ShowFolder},
		{name: "fedit", usage: "<folder> [-name] [-color] [-icon]", run: a.EditFolder},
		{name: "mvdir", usage: "<folder> [parent] move a folder (no parent = root)", run: a.MoveFolder},
		{name: "rmdir", usage: "<folder> delete a folder and its subfolders", run: a.DeleteFolder},
		{name: "file", usage: "<folder> <id> put a recording in a folder", run: a.FileRecording},
		{name: "unfile", usage: "<folder> <id> take a recording out of a folder", run: a.UnfileRecording},
		{name: "mvrec", usage: "<id> <from> <to> move a recording between folders", run: a.MoveRecording},

		{name: "share", usage: "<id> user[:role]... share a recording", auth: true, run: a.Share},
		{name: "role", usage: "<id> <user> <role> change a collaborator role", auth: true, run: a.ChangeRole},
		{name: "uncollab", usage: "<id> <user> remove a collaborator", auth: true, run: a.RemoveCollaborator},
		{name: "unshare", usage: "<id> stop sharing", auth: true, run: a.Unshare},
		{name: "shared", usage: "list shared recordings", auth: true, run: a.ListShared},
		{name: "comment", usage: "<id> -at sec [text] comment a recording", auth: true, run: a.AddComment},
		{name: "comments", usage: "<id> list comments", auth: true, run: a.ListComments},
		{name: "editcomment", usage: "<comment> <text> edit a comment", auth: true, run: a.EditComment},
		{name: "rmcomment", usage: "<comment> delete a comment", auth: true, run: a.DeleteComment},

		{name: "settings", usage: "show settings", run: a.ShowSettings},
		{name: "set", usage: "<name> <value> change a setting", run: a.ChangeSetting},
		{name: "resetsettings", usage: "restore default settings", run: a.ResetSettings},

		{name: "transcribe", usage: "<id> [-lang L] [-prompt P] transcribe a recording", auth: true, run: a.Transcribe},
		{name: "history", usage: "[-n N] server transcription history", auth: true, run: a.History},
	}
}

func newFlagSet(name string, w io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(w)
	return fs
}

// parseInterspersed parses fs allowing flags after positional arguments and
// returns the positional ones.
func parseInterspersed(fs *flag.FlagSet, args []string) ([]string, error) {
	var pos []string
	for {
		if err := fs.Parse(args); err != nil {
			return nil, err
		}
		args = fs.Args()
		if len(args) == 0 {
			return pos, nil
		}
		pos = append(pos, args[0])
		args = args[1:]
	}
}

// setFlags returns the names of the flags given on the command line.
func setFlags(fs *flag.FlagSet) map[string]bool {
	m := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { m[f.Name] = true })
	return m
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

func parseCategories(s string) ([]models.Category, error) {
	var out []models.Category
	for _, p := range splitList(s) {
		c := models.Category(p)
		if !c.Valid() {
			return nil, fmt.Errorf("category %q: %w", p, common.ErrInvalidArgument)
		}
		out = append(out, c)
	}
	return out, nil
}

func parseDate(s string, endOfDay bool) (*time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("date %q: %w", s, common.ErrInvalidArgument)
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Nanosecond)
	}
	return &t, nil
}

func formatSeconds(s float64) string {
	d := time.Duration(s * float64(time.Second)).Round(time.Second)
	return fmt.Sprintf("%d:%02d", int(d.Minutes()), int(d.Seconds())%60)
}

func (a *App) printRecordingLine(r models.Recording) {
	star := " "
	if r.IsFavorite {
		star = "*"
	}
	line := fmt.Sprintf("%s %s  %-30s %6s  [%s]", star, r.ID, r.Title, formatSeconds(r.Duration), r.Category)
	if len(r.Tags) > 0 {
		line += " #" + strings.Join(r.Tags, " #")
	}
	fmt.Fprintln(a.out, line)
}

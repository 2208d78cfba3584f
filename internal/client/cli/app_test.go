package cli

import (
	"bufio"
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/voicememo/internal/api"
	"github.com/dmitrijs2005/voicememo/internal/client/models"
	"github.com/dmitrijs2005/voicememo/internal/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeAudio(t *testing.T, name string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte("RIFFfakeaudio"), 0o600))
	return p
}

func onlyRecording(t *testing.T, a *App) models.Recording {
	t.Helper()
	items := a.lib.Recordings.List()
	require.Len(t, items, 1)
	return items[0]
}

func TestApp_AddListShow(t *testing.T) {
	a, out := newTestApp(t, &fakeAPI{}, false)
	ctx := context.Background()
	path := writeAudio(t, "standup.m4a")

	require.NoError(t, a.AddRecording(ctx, []string{path, "-title", "Team sync", "-d", "95", "-c", "meetings", "-tags", "work, weekly", "-fav"}))

	r := onlyRecording(t, a)
	assert.Equal(t, "Team sync", r.Title)
	assert.Equal(t, models.CategoryMeetings, r.Category)
	assert.Equal(t, []string{"work", "weekly"}, r.Tags)
	assert.True(t, r.IsFavorite)
	assert.Equal(t, int64(len("RIFFfakeaudio")), r.Size)
	assert.True(t, strings.HasPrefix(r.URI, "file://"))
	assert.Equal(t, models.StorageLocal, r.StorageLocation)

	out.Reset()
	require.NoError(t, a.ListRecordings(ctx, []string{"-q", "team", "-fav", "-min", "60"}))
	assert.Contains(t, out.String(), "Team sync")
	assert.Contains(t, out.String(), "1:35")

	out.Reset()
	require.NoError(t, a.ListRecordings(ctx, []string{"-c", "ideas"}))
	assert.Contains(t, out.String(), "No recordings")

	out.Reset()
	require.NoError(t, a.ShowRecording(ctx, []string{r.ID}))
	assert.Contains(t, out.String(), "Title:     Team sync")
	assert.Contains(t, out.String(), "Tags:      work, weekly")
}

func TestApp_AddDefaultsAndErrors(t *testing.T) {
	a, _ := newTestApp(t, &fakeAPI{}, false)
	ctx := context.Background()
	path := writeAudio(t, "idea.m4a")

	assert.ErrorIs(t, a.AddRecording(ctx, nil), errUsage)
	assert.Error(t, a.AddRecording(ctx, []string{filepath.Join(t.TempDir(), "missing.m4a")}))
	assert.ErrorIs(t, a.AddRecording(ctx, []string{path, "-c", "songs"}), common.ErrInvalidArgument)
	assert.ErrorIs(t, a.AddRecording(ctx, []string{path, "-folder", "nope"}), common.ErrNotFound)
	assert.Equal(t, 0, a.lib.Recordings.Len())

	require.NoError(t, a.AddRecording(ctx, []string{path, "-cloud"}))
	r := onlyRecording(t, a)
	assert.Equal(t, "idea", r.Title)
	assert.Equal(t, models.CategoryNotes, r.Category)
	assert.Equal(t, models.StorageCloud, r.StorageLocation)
}

func TestApp_ListFilterErrors(t *testing.T) {
	a, _ := newTestApp(t, &fakeAPI{}, false)
	ctx := context.Background()

	assert.ErrorIs(t, a.ListRecordings(ctx, []string{"-c", "songs"}), common.ErrInvalidArgument)
	assert.ErrorIs(t, a.ListRecordings(ctx, []string{"-from", "yesterday"}), common.ErrInvalidArgument)
	assert.ErrorIs(t, a.ListRecordings(ctx, []string{"-storage", "tape"}), common.ErrInvalidArgument)
}

func TestApp_ListByDate(t *testing.T) {
	a, out := newTestApp(t, &fakeAPI{}, false)
	ctx := context.Background()
	require.NoError(t, a.AddRecording(ctx, []string{writeAudio(t, "a.m4a")}))

	today := onlyRecording(t, a).CreatedAt.UTC().Format(dateLayout)
	require.NoError(t, a.ListRecordings(ctx, []string{"-from", today, "-to", today}))
	assert.Contains(t, out.String(), " a ")

	out.Reset()
	tomorrow := onlyRecording(t, a).CreatedAt.UTC().Add(24 * time.Hour).Format(dateLayout)
	require.NoError(t, a.ListRecordings(ctx, []string{"-from", tomorrow}))
	assert.Contains(t, out.String(), "No recordings")
}

func TestApp_EditAppliesOnlyGivenFlags(t *testing.T) {
	a, _ := newTestApp(t, &fakeAPI{}, false)
	ctx := context.Background()
	require.NoError(t, a.AddRecording(ctx, []string{writeAudio(t, "a.m4a"), "-title", "Old", "-tags", "x", "-notes", "keep"}))
	id := onlyRecording(t, a).ID

	assert.ErrorIs(t, a.EditRecording(ctx, []string{id}), errUsage)
	require.NoError(t, a.EditRecording(ctx, []string{id, "-title", "New", "-tags", ""}))

	r := onlyRecording(t, a)
	assert.Equal(t, "New", r.Title)
	assert.Empty(t, r.Tags)
	assert.Equal(t, "keep", r.Notes)

	assert.ErrorIs(t, a.EditRecording(ctx, []string{"nope", "-title", "x"}), common.ErrNotFound)
}

func TestApp_FavoriteAndDelete(t *testing.T) {
	a, out := newTestApp(t, &fakeAPI{}, true)
	ctx := context.Background()
	require.NoError(t, a.AddRecording(ctx, []string{writeAudio(t, "a.m4a")}))
	id := onlyRecording(t, a).ID

	require.NoError(t, a.ToggleFavorite(ctx, []string{id}))
	assert.Contains(t, out.String(), "Added to favorites")
	require.NoError(t, a.ToggleFavorite(ctx, []string{id}))
	assert.Contains(t, out.String(), "Removed from favorites")

	require.NoError(t, a.CreateFolder(ctx, []string{"Inbox"}))
	folder := a.lib.Folders.RootFolders()[0].ID
	require.NoError(t, a.FileRecording(ctx, []string{folder, id}))
	require.NoError(t, a.Share(ctx, []string{id, "bob"}))

	require.NoError(t, a.DeleteRecording(ctx, []string{id}))
	assert.Equal(t, 0, a.lib.Recordings.Len())
	assert.Empty(t, a.lib.Folders.RecordingIDs(folder))
	_, shared := a.lib.Collaboration.SharedRecording(id)
	assert.False(t, shared)

	assert.ErrorIs(t, a.DeleteRecording(ctx, []string{id}), common.ErrNotFound)
}

func TestApp_TagsAndCategories(t *testing.T) {
	a, out := newTestApp(t, &fakeAPI{}, false)
	ctx := context.Background()
	require.NoError(t, a.AddRecording(ctx, []string{writeAudio(t, "a.m4a"), "-c", "ideas", "-tags", "b,a"}))
	require.NoError(t, a.AddRecording(ctx, []string{writeAudio(t, "b.m4a"), "-c", "meetings", "-tags", "a"}))

	out.Reset()
	require.NoError(t, a.ListTags(ctx, nil))
	require.NoError(t, a.ListCategories(ctx, nil))
	assert.Equal(t, "b\na\nideas\nmeetings\n", out.String())
}

func TestApp_Markers(t *testing.T) {
	a, out := newTestApp(t, &fakeAPI{}, false)
	ctx := context.Background()
	require.NoError(t, a.AddRecording(ctx, []string{writeAudio(t, "a.m4a"), "-d", "60"}))
	id := onlyRecording(t, a).ID

	assert.ErrorIs(t, a.AddMarker(ctx, []string{id, "-at", "61", "-label", "late"}), common.ErrInvalidMarker)
	require.NoError(t, a.AddMarker(ctx, []string{id, "-at", "30", "-label", "middle"}))

	m := onlyRecording(t, a).Markers[0]
	require.NoError(t, a.EditMarker(ctx, []string{id, m.ID, "-note", "decision"}))
	m = onlyRecording(t, a).Markers[0]
	assert.Equal(t, "middle", m.Label)
	assert.Equal(t, "decision", m.Note)

	out.Reset()
	require.NoError(t, a.ShowRecording(ctx, []string{id}))
	assert.Contains(t, out.String(), "middle (decision)")

	require.NoError(t, a.DeleteMarker(ctx, []string{id, m.ID}))
	assert.Empty(t, onlyRecording(t, a).Markers)
}

func TestApp_Folders(t *testing.T) {
	a, out := newTestApp(t, &fakeAPI{}, false)
	ctx := context.Background()

	require.NoError(t, a.CreateFolder(ctx, []string{"Work", "-color", "blue"}))
	work := a.lib.Folders.RootFolders()[0]
	assert.Equal(t, "blue", work.Color)

	require.NoError(t, a.CreateFolder(ctx, []string{"Client", "calls", "-parent", work.ID}))
	calls := a.lib.Folders.Subfolders(work.ID)[0]
	assert.Equal(t, "Client calls", calls.Name)
	assert.ErrorIs(t, a.CreateFolder(ctx, []string{"X", "-parent", "nope"}), common.ErrNotFound)

	require.NoError(t, a.AddRecording(ctx, []string{writeAudio(t, "a.m4a"), "-title", "Kickoff", "-folder", calls.ID}))

	out.Reset()
	require.NoError(t, a.FolderTree(ctx, nil))
	assert.Equal(t, work.ID+" Work (0)\n  "+calls.ID+" Client calls (1)\n", out.String())

	out.Reset()
	require.NoError(t, a.ShowFolder(ctx, []string{calls.ID}))
	assert.Contains(t, out.String(), "Work / Client calls")
	assert.Contains(t, out.String(), "Kickoff")

	assert.ErrorIs(t, a.MoveFolder(ctx, []string{work.ID, calls.ID}), common.ErrCycle)
	require.NoError(t, a.MoveFolder(ctx, []string{calls.ID}))
	assert.Len(t, a.lib.Folders.RootFolders(), 2)

	require.NoError(t, a.EditFolder(ctx, []string{work.ID, "-name", "Job"}))
	f, _ := a.lib.Folders.Get(work.ID)
	assert.Equal(t, "Job", f.Name)
	assert.Equal(t, "blue", f.Color)

	rec := onlyRecording(t, a).ID
	require.NoError(t, a.MoveRecording(ctx, []string{rec, calls.ID, work.ID}))
	assert.Equal(t, []string{work.ID}, a.lib.Folders.FoldersOf(rec))
	require.NoError(t, a.UnfileRecording(ctx, []string{work.ID, rec}))
	assert.ErrorIs(t, a.UnfileRecording(ctx, []string{work.ID, rec}), common.ErrNotFound)
	assert.ErrorIs(t, a.FileRecording(ctx, []string{work.ID, "nope"}), common.ErrNotFound)

	out.Reset()
	require.NoError(t, a.DeleteFolder(ctx, []string{work.ID}))
	assert.Contains(t, out.String(), "Deleted 1 folder(s)")
	assert.Equal(t, 1, a.lib.Recordings.Len())
}

func TestParseCollaborator(t *testing.T) {
	tests := []struct {
		in      string
		want    models.CollaboratorInput
		wantErr bool
	}{
		{"bob", models.CollaboratorInput{UserID: "bob", Role: models.RoleViewer}, false},
		{"bob:editor", models.CollaboratorInput{UserID: "bob", Role: models.RoleEditor}, false},
		{"bob:admin", models.CollaboratorInput{}, true},
		{":viewer", models.CollaboratorInput{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseCollaborator(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, common.ErrInvalidArgument)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestApp_SharingAndComments(t *testing.T) {
	a, out := newTestApp(t, &fakeAPI{}, true)
	ctx := context.Background()
	require.NoError(t, a.AddRecording(ctx, []string{writeAudio(t, "a.m4a"), "-title", "Pitch", "-d", "120"}))
	id := onlyRecording(t, a).ID

	assert.ErrorIs(t, a.Share(ctx, []string{"nope", "bob"}), common.ErrNotFound)
	require.NoError(t, a.Share(ctx, []string{id, "bob", "carol:editor"}))
	assert.Contains(t, out.String(), "carol editor")

	require.NoError(t, a.ChangeRole(ctx, []string{id, "bob", "editor"}))
	sh, ok := a.lib.Collaboration.SharedRecording(id)
	require.True(t, ok)
	assert.Equal(t, models.RoleEditor, sh.Collaborators[0].Role)

	out.Reset()
	require.NoError(t, a.ListShared(ctx, nil))
	assert.Contains(t, out.String(), "Shared by me:\n  "+id+" Pitch")

	require.NoError(t, a.AddComment(ctx, []string{id, "-at", "12.5", "great", "intro"}))
	out.Reset()
	require.NoError(t, a.ListComments(ctx, []string{id}))
	assert.Contains(t, out.String(), "u1: great intro")

	c := a.lib.Collaboration.CommentsFor(id)[0]
	require.NoError(t, a.EditComment(ctx, []string{c.ID, "better", "intro"}))
	assert.Equal(t, "better intro", a.lib.Collaboration.CommentsFor(id)[0].Content)
	require.NoError(t, a.DeleteComment(ctx, []string{c.ID}))
	assert.Empty(t, a.lib.Collaboration.CommentsFor(id))

	require.NoError(t, a.RemoveCollaborator(ctx, []string{id, "bob"}))
	require.NoError(t, a.Unshare(ctx, []string{id}))
	_, ok = a.lib.Collaboration.SharedRecording(id)
	assert.False(t, ok)
}

func TestApp_CommentPromptsForText(t *testing.T) {
	a, _ := newTestApp(t, &fakeAPI{}, true)
	ctx := context.Background()
	require.NoError(t, a.AddRecording(ctx, []string{writeAudio(t, "a.m4a")}))
	id := onlyRecording(t, a).ID

	a.reader = bufio.NewReader(strings.NewReader("first line\nsecond line\n\n"))
	require.NoError(t, a.AddComment(ctx, []string{id}))
	assert.Equal(t, "first line\nsecond line", a.lib.Collaboration.CommentsFor(id)[0].Content)
}

func TestApp_Settings(t *testing.T) {
	a, out := newTestApp(t, &fakeAPI{}, false)
	ctx := context.Background()

	require.NoError(t, a.ChangeSetting(ctx, []string{"theme", "dark"}))
	require.NoError(t, a.ChangeSetting(ctx, []string{"AutoTranscribe", "true"}))
	require.NoError(t, a.ChangeSetting(ctx, []string{"autodeletedays", "never"}))
	assert.Contains(t, out.String(), `"theme": "dark"`)

	s := a.lib.Settings.Get()
	assert.Equal(t, models.ThemeDark, s.Theme)
	assert.True(t, s.AutoTranscribe)
	assert.Nil(t, s.AutoDeleteAfterDays)

	require.NoError(t, a.ChangeSetting(ctx, []string{"autodeletedays", "7"}))
	require.NotNil(t, a.lib.Settings.Get().AutoDeleteAfterDays)
	assert.Equal(t, 7, *a.lib.Settings.Get().AutoDeleteAfterDays)

	assert.ErrorIs(t, a.ChangeSetting(ctx, []string{"theme", "neon"}), common.ErrInvalidArgument)
	assert.ErrorIs(t, a.ChangeSetting(ctx, []string{"volume", "11"}), common.ErrInvalidArgument)
	assert.ErrorIs(t, a.ChangeSetting(ctx, []string{"autosync", "maybe"}), common.ErrInvalidArgument)
	assert.ErrorIs(t, a.ChangeSetting(ctx, []string{"theme"}), errUsage)

	require.NoError(t, a.ResetSettings(ctx, nil))
	assert.Equal(t, models.DefaultSettings(), a.lib.Settings.Get())
}

func TestApp_TranscribeAndHistory(t *testing.T) {
	var uploaded bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		uploaded = r.Method == http.MethodPut
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	f := &fakeAPI{
		uploadURL:      srv.URL + "/upload",
		transcribeText: "bonjour tout le monde",
		history:        []api.Transcription{{ID: "t1", Language: "fr", Text: "bonjour", CreatedAt: time.Now()}},
	}
	a, out := newTestApp(t, f, true)
	ctx := context.Background()
	require.NoError(t, a.AddRecording(ctx, []string{writeAudio(t, "a.m4a")}))
	id := onlyRecording(t, a).ID

	require.NoError(t, a.Transcribe(ctx, []string{id, "-lang", "fr"}))
	assert.True(t, uploaded)
	assert.Contains(t, out.String(), "bonjour tout le monde")
	assert.Equal(t, "bonjour tout le monde", onlyRecording(t, a).Transcription)

	out.Reset()
	require.NoError(t, a.History(ctx, []string{"-n", "5"}))
	assert.Equal(t, 5, f.lastLimit)
	assert.Contains(t, out.String(), "[fr] bonjour")
}

func TestApp_AutoTranscribeOnAdd(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a, out := newTestApp(t, &fakeAPI{uploadURL: srv.URL, transcribeText: "hello"}, true)
	ctx := context.Background()
	require.NoError(t, a.ChangeSetting(ctx, []string{"autotranscribe", "true"}))

	require.NoError(t, a.AddRecording(ctx, []string{writeAudio(t, "a.m4a")}))
	assert.Equal(t, "hello", onlyRecording(t, a).Transcription)
	assert.Contains(t, out.String(), "hello")
}

func TestApp_SessionAndREPL(t *testing.T) {
	a, out := newTestApp(t, &fakeAPI{}, true)
	ctx := context.Background()

	assert.True(t, a.isLoggedIn())
	require.NoError(t, a.WhoAmI(ctx, nil))
	assert.Contains(t, out.String(), "alice (u1)")

	out.Reset()
	sc := bufio.NewScanner(strings.NewReader("mkdir Inbox\nfolders\nlogout\nshared\nexit\n"))
	runREPL(ctx, a, a.getStatus, sc, out)

	s := out.String()
	assert.Contains(t, s, "vm (alice ")
	assert.Contains(t, s, "Inbox (0)")
	assert.Contains(t, s, "Logged out")
	assert.Contains(t, s, "Please login first")
	assert.False(t, a.isLoggedIn())
}

func TestApp_CheckOnlineSwitchesMode(t *testing.T) {
	f := &fakeAPI{}
	a, _ := newTestApp(t, f, false)
	ctx := context.Background()

	a.checkOnline(ctx)
	assert.Equal(t, ModeOnline, a.mode())

	f.pingErr = assert.AnError
	a.checkOnline(ctx)
	assert.Equal(t, ModeOffline, a.mode())
}

func TestApp_LoginFallsBackOffline(t *testing.T) {
	a, out := newTestApp(t, &fakeAPI{}, false)
	ctx := context.Background()

	getSimpleText = func(*bufio.Reader, string, io.Writer) (string, error) { return "alice", nil }
	getPassword = func(io.Writer) ([]byte, error) { return []byte("secret"), nil }
	t.Cleanup(func() {
		getSimpleText = GetSimpleText
		getPassword = GetPassword
	})

	err := a.Login(ctx, nil)
	require.Error(t, err)
	assert.Contains(t, out.String(), "Server unavailable")
	assert.Equal(t, ModeDisabled, a.mode())
}

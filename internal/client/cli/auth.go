package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/dmitrijs2005/voicememo/internal/client/client"
	"github.com/dmitrijs2005/voicememo/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username and password and creates the account.
// The password is wiped before returning.
func (a *App) Register(ctx context.Context, _ []string) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.authService.Register(ctx, userName, password); err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Success!")
	return nil
}

// Login signs in online, falling back to the cached verifier when the server
// is unreachable, and sets the connectivity mode accordingly.
func (a *App) Login(ctx context.Context, _ []string) error {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if _, err := a.authService.OnlineLogin(ctx, userName, password); err == nil {
		a.setMode(ModeOnline)
		fmt.Fprintln(a.out, "Login successful")
		return nil
	} else if !errors.Is(err, client.ErrUnavailable) {
		return err
	}

	fmt.Fprintln(a.out, "Server unavailable, trying offline login...")
	if _, err := a.authService.OfflineLogin(ctx, userName, password); err != nil {
		a.setMode(ModeDisabled)
		return err
	}
	a.setMode(ModeOffline)
	fmt.Fprintln(a.out, "Offline login successful")
	return nil
}

// Logout ends the session. With -wipe the cached offline credentials are
// removed too.
func (a *App) Logout(ctx context.Context, args []string) error {
	fs := newFlagSet("logout", a.out)
	wipe := fs.Bool("wipe", false, "also remove offline credentials")
	if err := fs.Parse(args); err != nil {
		return err
	}

	a.authService.Logout(ctx)
	if *wipe {
		if err := a.authService.ClearOfflineData(ctx); err != nil {
			return err
		}
	}
	fmt.Fprintln(a.out, "Logged out")
	return nil
}

func (a *App) WhoAmI(_ context.Context, _ []string) error {
	u, ok := a.authService.CurrentUser()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in")
		return nil
	}
	fmt.Fprintf(a.out, "%s (%s) %s\n", u.Username, u.ID, a.mode())
	return nil
}

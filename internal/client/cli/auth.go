package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/planningpoker/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a name, an email and a password and creates an
// account. Logging in is a separate step.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.do(func() error {
		dev, err := a.ctrl.Register(ctx, name, email, string(password))
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Registered %s, you can log in now.\n", dev.Email)
		return nil
	})
}

// Login prompts for credentials. A join deferred by an invite is carried
// out right after a successful login.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	return a.do(func() error {
		return a.ctrl.Login(ctx, email, string(password))
	})
}

// Logout ends the session and forgets the stored credential.
func (a *App) Logout(ctx context.Context) error {
	return a.do(func() error {
		return a.ctrl.Logout(ctx)
	})
}

package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/paperkeeper/internal/common"
)

// getSimpleText and getPassword are swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

func (a *App) credentials() (string, []byte, error) {
	userName, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return "", nil, err
	}
	password, err := getPassword(a.out)
	if err != nil {
		return "", nil, err
	}
	return userName, password, nil
}

func (a *App) Register(ctx context.Context, _ []string) error {
	userName, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Register(ctx, userName, string(password)); err != nil {
		return err
	}

	printlnFn("Registered. You can log in now.")
	return nil
}

func (a *App) Login(ctx context.Context, _ []string) error {
	userName, password, err := a.credentials()
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.api.Login(ctx, userName, string(password)); err != nil {
		return err
	}

	a.userName = userName
	a.persist()
	printlnFn(fmt.Sprintf("Logged in as %s", userName))
	return nil
}

// Logout always forgets the local session, even if the server call fails.
func (a *App) Logout(ctx context.Context, _ []string) error {
	err := a.api.Logout(ctx)
	a.userName = ""
	a.persist()
	printlnFn("Logged out")
	return err
}

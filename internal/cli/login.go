package cli

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/julianstephens/tempo/internal/auth"
)

type LoginCmd struct {
	Email string `arg:"" help:"Account email address."`
}

func (c *LoginCmd) Run(ctx *Context) error {
	if c.Email == "" {
		return fmt.Errorf("email cannot be empty")
	}

	// The same email always maps to the same user id, so data survives
	// logout/login cycles.
	id := uuid.NewSHA1(uuid.NameSpaceURL, []byte("tempo:user:"+c.Email)).String()

	if err := ctx.Session.SignIn(auth.User{ID: id, Email: c.Email}); err != nil {
		return err
	}

	fmt.Printf("Signed in as %s\n", c.Email)
	return nil
}

type LogoutCmd struct{}

func (c *LogoutCmd) Run(ctx *Context) error {
	if ctx.Session.Current() == nil {
		fmt.Println("Not signed in.")
		return nil
	}
	if err := ctx.Session.SignOut(); err != nil {
		return err
	}
	fmt.Println("Signed out.")
	return nil
}

type WhoamiCmd struct{}

func (c *WhoamiCmd) Run(ctx *Context) error {
	user := ctx.Session.Current()
	if user == nil {
		fmt.Println("Not signed in.")
		return nil
	}
	fmt.Printf("%s (%s)\n", user.Email, user.ID)
	return nil
}

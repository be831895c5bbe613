package lessons

import (
	"context"
	"fmt"
	"io"
	"unsafe"
)

// Structs defines and updates a struct, uses a builder function, copies with
// changes, and shows distinct named types over the same layout.
type Structs struct{}

func (Structs) Name() string  { return "structs" }
func (Structs) Title() string { return "Defining and instantiating structs" }

// User is the example record of the structs lesson.
type User struct {
	Active      bool
	Username    string
	Email       string
	SignInCount uint64
}

// Color and Point share a layout but are different types.
type (
	Color [3]int32
	Point [3]int32
)

type alwaysEqual struct{}

func buildUser(email, username string) User {
	return User{
		Email:       email,
		Username:    username,
		Active:      true,
		SignInCount: 1,
	}
}

func takesColor(c Color) int32 {
	return c[0]
}

func (Structs) Run(ctx context.Context, out io.Writer) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	user1 := User{
		Email:       "someone@example.com",
		Username:    "someusername123",
		Active:      true,
		SignInCount: 1,
	}
	fmt.Fprintf(out, "%s, %s, %v, %d\n", user1.Email, user1.Username, user1.Active, user1.SignInCount)

	user2 := user1
	user2.SignInCount++
	fmt.Fprintf(out, "user2 signed in %d times, user1 %d\n", user2.SignInCount, user1.SignInCount)

	user3 := buildUser("Dave@dave.com", "DaveDave")
	fmt.Fprintln(out, user3.Username)

	// Copy, then override: the struct update idiom.
	user5 := user1
	user5.Email = "another@example.com"
	fmt.Fprintf(out, "%s, %s\n", user5.Email, user5.Username)

	black := Color{0, 12, 3}
	origin := Point{1, 4, 2}
	fmt.Fprintln(out, takesColor(black))
	// takesColor(origin) does not compile; an explicit conversion does.
	fmt.Fprintln(out, takesColor(Color(origin)))

	subject := alwaysEqual{}
	fmt.Fprintf(out, "empty struct size: %d, equal to itself: %v\n", unsafe.Sizeof(subject), subject == alwaysEqual{})
	return nil
}

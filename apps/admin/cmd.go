package main

import (
	"errors"
	"flag"
	"fmt"
	"syscall"

	"github.com/go-playground/validator/v10"
	"github.com/jmoiron/sqlx"
	"golang.org/x/term"

	"github.com/trezcool/darasa/core/user"
)

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp = errors.New("help provided")
)

type commandLine struct {
	db       *sqlx.DB
	usrRepo  user.Repository
	validate *validator.Validate
}

func (cli *commandLine) printUsage() {
	fmt.Println("Usage:")
	fmt.Println("  adduser -name NAME -username USERNAME -email EMAIL - create a user; the password will be prompted")
	fmt.Println("  enroll -user USER_ID -class CLASS_ID -role ROLE - enroll a user in a class")
	fmt.Println("  unenroll -user USER_ID -class CLASS_ID - remove a user from a class")
	fmt.Println("  migrate - apply pending database migrations")
}

func (cli *commandLine) run(args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	addUserCmd := flag.NewFlagSet("adduser", flag.ExitOnError)
	addUserName := addUserCmd.String("name", "", "The user's full name.")
	addUserUname := addUserCmd.String("username", "", "The user's username.")
	addUserEmail := addUserCmd.String("email", "", "The user's email. The password will be prompted next.")

	enrollCmd := flag.NewFlagSet("enroll", flag.ExitOnError)
	enrollUser := enrollCmd.String("user", "", "The user's id.")
	enrollClass := enrollCmd.String("class", "", "The class id.")
	enrollRole := enrollCmd.String("role", user.RoleStudent, "The class role: student, teacher or admin.")

	unenrollCmd := flag.NewFlagSet("unenroll", flag.ExitOnError)
	unenrollUser := unenrollCmd.String("user", "", "The user's id.")
	unenrollClass := unenrollCmd.String("class", "", "The class id.")

	switch args[1] {
	case "adduser":
		if err := addUserCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *addUserUname == "" || *addUserEmail == "" {
			addUserCmd.Usage()
			return errHelp
		}
		fmt.Print("Enter password:")
		pwd, err := readPasswordFunc(syscall.Stdin)
		fmt.Println()
		if err != nil {
			return err
		}
		if len(pwd) == 0 {
			addUserCmd.Usage()
			return errHelp
		}
		return cli.addUser(user.NewUser{
			Name:     *addUserName,
			Username: *addUserUname,
			Email:    *addUserEmail,
			Password: string(pwd),
		})
	case "enroll":
		if err := enrollCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *enrollUser == "" || *enrollClass == "" {
			enrollCmd.Usage()
			return errHelp
		}
		return cli.enroll(*enrollUser, *enrollClass, *enrollRole)
	case "unenroll":
		if err := unenrollCmd.Parse(args[2:]); err != nil {
			return err
		}
		if *unenrollUser == "" || *unenrollClass == "" {
			unenrollCmd.Usage()
			return errHelp
		}
		return cli.unenroll(*unenrollUser, *unenrollClass)
	case "migrate":
		return cli.migrate()
	default:
		cli.printUsage()
		return errHelp
	}
}

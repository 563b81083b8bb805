package main

import (
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/Slavchick12/api-yamdb/config"
	"github.com/Slavchick12/api-yamdb/database"
	"github.com/Slavchick12/api-yamdb/database/model"
	"github.com/Slavchick12/api-yamdb/logger"
	"github.com/Slavchick12/api-yamdb/web"
	"github.com/Slavchick12/api-yamdb/web/service"

	"github.com/joho/godotenv"
	"github.com/op/go-logging"
	"github.com/spf13/cobra"
)

func runWebServer() {
	log.Printf("%v %v", config.GetName(), config.GetVersion())

	switch config.GetLogLevel() {
	case config.Debug:
		logger.InitLogger(logging.DEBUG)
	case config.Info:
		logger.InitLogger(logging.INFO)
	case config.Notice:
		logger.InitLogger(logging.NOTICE)
	case config.Warn:
		logger.InitLogger(logging.WARNING)
	case config.Error:
		logger.InitLogger(logging.ERROR)
	default:
		log.Fatal("unknown log level:", config.GetLogLevel())
	}

	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}

	server := web.NewServer()
	err = server.Start()
	if err != nil {
		log.Println(err)
		return
	}

	sigCh := make(chan os.Signal, 1)
	// Trap shutdown signals
	signal.Notify(sigCh, syscall.SIGHUP, syscall.SIGTERM)
	for {
		sig := <-sigCh

		switch sig {
		case syscall.SIGHUP:
			err := server.Stop()
			if err != nil {
				logger.Warning("stop server err:", err)
			}
			server = web.NewServer()
			err = server.Start()
			if err != nil {
				log.Println(err)
				return
			}
		default:
			server.Stop()
			database.CloseDB()
			return
		}
	}
}

func migrateDb() {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}
	fmt.Println("Migration done!")
}

func seedDb(path string) {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		log.Fatal(err)
	}
	if err := database.Seed(path); err != nil {
		fmt.Println("seed failed:", err)
		return
	}
	fmt.Println("Seed done!")
}

// createAdmin creates an admin account, or promotes the user when the
// username is already taken. The printed confirmation code is exchanged for
// a token the same way as for signed-up users.
func createAdmin(username string, email string) {
	err := database.InitDB(config.GetDBPath())
	if err != nil {
		fmt.Println(err)
		return
	}

	userService := service.UserService{DB: database.GetDB()}

	user, err := userService.GetByUsername(username)
	if err == nil {
		_, err = userService.Update(user, service.UserPatch{Role: roleptr(model.RoleAdmin)}, true)
		if err != nil {
			fmt.Println("promote user failed:", err)
			return
		}
		fmt.Printf("user %s promoted to admin\n", username)
		return
	}

	user, err = userService.Create(service.UserInput{
		Username: username,
		Email:    email,
		Role:     model.RoleAdmin,
	})
	if err != nil {
		fmt.Println("create admin failed:", err)
		return
	}
	fmt.Printf("admin %s created, confirmation code: %s\n", user.Username, user.ConfirmationCode)
}

func roleptr(r model.Role) *model.Role { return &r }

func main() {
	_ = godotenv.Load()

	var rootCmd = &cobra.Command{
		Use: "api-yamdb",
	}

	var runCmd = &cobra.Command{
		Use:   "run",
		Short: "Run the API server",
		Run: func(cmd *cobra.Command, args []string) {
			runWebServer()
		},
	}

	var migrateCmd = &cobra.Command{
		Use:   "migrate",
		Short: "Create or migrate the database schema",
		Run: func(cmd *cobra.Command, args []string) {
			migrateDb()
		},
	}

	var seedCmd = &cobra.Command{
		Use:   "seed",
		Short: "Load catalog fixtures into the database",
		Run: func(cmd *cobra.Command, args []string) {
			file, _ := cmd.Flags().GetString("file")
			seedDb(file)
		},
	}

	seedCmd.Flags().String("file", "fixtures.json", "set fixtures file path")

	var adminCmd = &cobra.Command{
		Use:   "admin",
		Short: "Create or promote an admin user",
		Run: func(cmd *cobra.Command, args []string) {
			username, _ := cmd.Flags().GetString("username")
			email, _ := cmd.Flags().GetString("email")
			if username == "" {
				fmt.Println("username is required")
				return
			}
			createAdmin(username, email)
		},
	}

	adminCmd.Flags().String("username", "", "set admin username")
	adminCmd.Flags().String("email", "", "set admin email")

	rootCmd.AddCommand(runCmd, migrateCmd, seedCmd, adminCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

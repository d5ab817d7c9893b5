package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/weathersafe/admin-console/internal/api"
	"github.com/weathersafe/admin-console/internal/console"
	"github.com/weathersafe/admin-console/internal/core/domain"
	"github.com/weathersafe/admin-console/internal/core/ports"
	"github.com/weathersafe/admin-console/internal/core/service"
	"github.com/weathersafe/admin-console/internal/infrastructure/config"
	diaghttp "github.com/weathersafe/admin-console/internal/infrastructure/http"
	"github.com/weathersafe/admin-console/internal/infrastructure/imaging"
	"github.com/weathersafe/admin-console/internal/infrastructure/push"
	"github.com/weathersafe/admin-console/internal/infrastructure/storage"
	"github.com/weathersafe/admin-console/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	log := logger.Init(logger.Options{
		Level:  cfg.LogLevel,
		Pretty: cfg.Env == "development",
	})

	figure.NewFigure("WeatherSafe", "", true).Print()
	fmt.Println("Barangay Administrative Console")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	credStorage, err := buildStorage(cfg)
	if err != nil {
		log.Fatal().Err(err).Msg("credential storage unavailable")
	}

	store := service.NewSessionStore(credStorage, logger.Component("session"))

	shell := &console.Shell{}
	store.Subscribe(shell.Observe)

	client := api.NewClient(cfg.ServerURL, store, logger.Component("api"))

	tokenPath := filepath.Join(filepath.Dir(cfg.Storage.SessionFile), "device_token")
	registrar := push.NewRegistrar(tokenPath, cfg.Push.Enabled, logger.Component("push"))

	auth := service.NewAuthService(client, store, registrar, logger.Component("auth"))

	renderer := console.NewRenderer(os.Stdout)

	if cfg.Push.Enabled {
		interval, err := time.ParseDuration(cfg.Push.PollInterval)
		if err != nil {
			interval = 30 * time.Second
		}
		var receiver ports.PushReceiver = push.NewReceiver(client, interval, logger.Component("push"))
		receiver.OnMessage(renderer.Toast)
		receiver.Start(ctx)
	}

	// Diagnostics endpoint for kiosk deployments; best effort.
	diag := diaghttp.NewRouter(cfg.ServerURL, credStorage)
	go func() {
		if err := diag.Start(cfg.DiagAddr); err != nil {
			log.Debug().Err(err).Msg("diagnostics server stopped")
		}
	}()

	// Shell renders logged-out immediately; the restored profile is
	// re-derived from the API before the menu appears.
	store.Restore(ctx)
	if store.Token() != "" {
		if _, err := auth.RefreshCurrentUser(ctx); err != nil {
			fmt.Println("Previous session is no longer valid. Please log in.")
		}
	}

	uploader := imaging.NewUploader(cfg.Imaging.Host, cfg.Imaging.CloudName, cfg.Imaging.UploadPreset)

	run(ctx, bufio.NewScanner(os.Stdin), shell, auth, client, uploader, renderer, log)
}

func buildStorage(cfg *config.Config) (ports.CredentialStorage, error) {
	if cfg.Storage.Backend == "redis" {
		rdb, err := storage.NewRedisClient(cfg.Storage.RedisAddr, cfg.Storage.RedisDB)
		if err != nil {
			return nil, err
		}
		return storage.NewRedisStorage(rdb), nil
	}
	return storage.NewFileStorage(cfg.Storage.SessionFile, cfg.Storage.SealKey), nil
}

func run(ctx context.Context, in *bufio.Scanner, shell *console.Shell, auth ports.AuthService, client *api.Client, uploader *imaging.Uploader, renderer *console.Renderer, log zerolog.Logger) {
	for {
		if !shell.LoggedIn() {
			if !loginLoop(ctx, in, auth) {
				return
			}
			continue
		}

		user := shell.CurrentUser()
		menu := shell.Menu()
		renderer.RenderMenu(user.Name, menu)

		fmt.Print("> ")
		if !in.Scan() {
			return
		}
		choice := strings.TrimSpace(in.Text())
		if choice == "q" {
			if err := auth.Logout(ctx); err != nil {
				fmt.Println("Logout failed:", err)
			}
			continue
		}
		if path, ok := strings.CutPrefix(choice, "img "); ok {
			uploadImage(ctx, strings.TrimSpace(path), uploader)
			continue
		}

		idx, err := strconv.Atoi(choice)
		if err != nil || idx < 1 || idx > len(menu) {
			continue
		}

		// Screens are rebuilt per visit: each one refetches independently on
		// mount and is closed on the way out so late responses are dropped.
		registry := console.NewRegistry(client, log)
		view, ok := registry.View(menu[idx-1])
		if !ok {
			continue
		}
		screenLoop(ctx, in, view, renderer, shell)
		view.Close()
	}
}

// uploadImage pushes a local file to the image host and prints the hosted URL
// for pasting into a profile field on the next form submit.
func uploadImage(ctx context.Context, path string, uploader *imaging.Uploader) {
	if path == "" {
		fmt.Println("usage: img <file>")
		return
	}
	f, err := os.Open(path)
	if err != nil {
		fmt.Println("Could not open file:", err)
		return
	}
	defer f.Close()

	url, err := uploader.Upload(ctx, filepath.Base(path), f)
	if err != nil {
		fmt.Println("Upload failed:", err)
		return
	}
	fmt.Println("Hosted at:", url)
	if id := imaging.PublicID(url); id != "" {
		fmt.Println("Public ID:", id)
	}
}

func loginLoop(ctx context.Context, in *bufio.Scanner, auth ports.AuthService) bool {
	fmt.Print("\nemail (empty to quit): ")
	if !in.Scan() {
		return false
	}
	email := strings.TrimSpace(in.Text())
	if email == "" {
		return false
	}
	fmt.Print("password: ")
	if !in.Scan() {
		return false
	}
	password := in.Text()

	_, err := auth.Login(ctx, email, password)
	switch {
	case err == nil:
		return true
	case errors.Is(err, domain.ErrAccountInactive):
		fmt.Println("Your account has been deactivated. Please contact support.")
	case errors.Is(err, domain.ErrRoleNotPermitted):
		fmt.Println("This account is not permitted to use the admin console.")
	default:
		if fields := api.IsValidationError(err); fields != nil {
			for field, msgs := range fields {
				fmt.Printf("  %s: %s\n", field, strings.Join(msgs, "; "))
			}
		} else {
			fmt.Println("Something went wrong. Please try again.")
		}
	}
	return true
}

func screenLoop(ctx context.Context, in *bufio.Scanner, view console.TableView, renderer *console.Renderer, shell *console.Shell) {
	view.Refresh(ctx)
	for {
		// A 401 observed mid-screen clears the session; fall back to login.
		if !shell.LoggedIn() {
			return
		}
		renderer.RenderView(view)
		if banner := view.Banner(); banner != "" {
			fmt.Println(banner)
		}

		fmt.Print("[r]efresh  [n]ew  [e]dit <id>  [d]el <id>  [u]ndelete <id>  [b]ack > ")
		if !in.Scan() {
			return
		}
		cmd, arg, _ := strings.Cut(strings.TrimSpace(in.Text()), " ")
		arg = strings.TrimSpace(arg)

		switch cmd {
		case "r":
			view.Refresh(ctx)
		case "n":
			view.OpenCreate()
			submitForm(ctx, in, view, renderer)
		case "e":
			view.OpenEdit(arg)
			submitForm(ctx, in, view, renderer)
		case "d":
			view.RequestDelete(arg)
			if confirm(in, "Delete "+arg+"?") {
				_ = view.ConfirmDelete(ctx)
			} else {
				view.Cancel()
			}
		case "u":
			view.RequestRestore(arg)
			if view.Modal() != console.ModalConfirmRestore {
				fmt.Println("This record cannot be restored.")
				continue
			}
			if confirm(in, "Restore "+arg+"?") {
				_ = view.ConfirmRestore(ctx)
			} else {
				view.Cancel()
			}
		case "b":
			return
		}
	}
}

// submitForm reads a one-line JSON payload and keeps the form open until it
// passes validation or the operator cancels with an empty line.
func submitForm(ctx context.Context, in *bufio.Scanner, view console.TableView, renderer *console.Renderer) {
	for view.Modal() == console.ModalCreate || view.Modal() == console.ModalEdit {
		fmt.Print("payload (JSON, empty to cancel): ")
		if !in.Scan() {
			view.Cancel()
			return
		}
		raw := strings.TrimSpace(in.Text())
		if raw == "" {
			view.Cancel()
			return
		}
		if err := view.SubmitJSON(ctx, raw); err != nil {
			fmt.Println(err)
		}
		if fields := view.FieldErrors(); len(fields) > 0 {
			renderer.RenderFieldErrors(fields)
		}
	}
}

func confirm(in *bufio.Scanner, prompt string) bool {
	fmt.Print(prompt + " [y/N] ")
	if !in.Scan() {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(in.Text()), "y")
}

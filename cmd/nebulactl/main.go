// nebulactl drives the Nebula client stores from the command line:
// directory search, profile display, connection-request handling and
// notification management against a running backend (real or mock).
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"time"

	"nebula/internal/api"
	"nebula/internal/auth"
	"nebula/internal/common/config"
	"nebula/internal/common/logger"
	"nebula/internal/models"
	"nebula/internal/store"
)

func usage() {
	fmt.Fprintf(os.Stderr, `Usage: nebulactl [flags] <command> [args]

Commands:
  login                 sign in with the mock identity
  logout                sign out
  whoami                show the current identity
  businesses            list the business directory
  business <id>         show one business (cached when cache.enabled)
  profile               show the current user's business
  rename <name>         rename the current user's business
  requests              list pending connection requests
  accept <id>           accept a connection request
  reject <id>           reject a connection request
  connect <id> <msg>    send a connection request
  notifications         list notifications
  read <id>             mark one notification read
  read-all              mark all notifications read

Flags:
`)
	flag.PrintDefaults()
}

func main() {
	var (
		serverURL = flag.String("server", "", "API base URL (overrides config)")
		page      = flag.Int("page", 1, "page number for listings")
		limit     = flag.Int("limit", 10, "page size for listings")
		query     = flag.String("query", "", "directory search query")
		industry  = flag.String("industry", "", "directory industry filter")
	)
	flag.Usage = usage
	flag.Parse()

	if flag.NArg() < 1 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	if *serverURL != "" {
		cfg.API.BaseURL = *serverURL
	}

	log := logger.NewStructured(cfg.Logging.Level, cfg.Logging.Format)
	client := api.NewClient(cfg.API.BaseURL, cfg.API.RequestTimeout(), log)

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	if err := run(ctx, flag.Args(), cfg, client, log, *page, *limit, *query, *industry); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, cfg *config.Config, client *api.Client, log logger.Logger, page, limit int, query, industry string) error {
	command := args[0]

	mock := auth.NewMockIdentity(cfg.Auth.StateFile, log)
	if !cfg.Auth.Mock {
		mock = auth.NewServerMockIdentity(client, log)
	}
	if err := mock.Load(ctx); err != nil {
		return err
	}

	switch command {
	case "login":
		if err := mock.Login(ctx); err != nil {
			return err
		}
		fmt.Println("signed in as", auth.DemoUser.Email)
		return nil

	case "logout":
		if err := mock.Logout(ctx); err != nil {
			return err
		}
		fmt.Println("signed out")
		return nil

	case "whoami":
		var source auth.IdentitySource = mock
		if !cfg.Auth.Mock {
			remote := auth.NewRemoteIdentity(client, log)
			if err := remote.Load(ctx); err != nil {
				return err
			}
			source = remote
		}
		user := source.CurrentUser()
		if user == nil {
			fmt.Println("not signed in")
			return nil
		}
		fmt.Printf("%s <%s>\n", user.Name, user.Email)
		return nil

	case "businesses":
		dir := store.NewBusinessDirectoryStore(client, api.BusinessListParams{
			Page:     page,
			Limit:    limit,
			Query:    query,
			Industry: industry,
		}, log)
		dir.Refetch(ctx)
		snap := dir.Snapshot()
		if snap.Err != nil {
			return snap.Err
		}
		for _, b := range snap.Businesses {
			fmt.Printf("%-14s %-24s %-22s trust=%d\n", b.ID, b.Name, b.Industry, b.TrustScore)
		}
		fmt.Printf("page %d/%d, %d total\n", snap.Pagination.Page, snap.Pagination.TotalPages, snap.Pagination.Total)
		return nil

	case "business":
		if len(args) < 2 {
			return fmt.Errorf("business requires a business id")
		}
		cache := api.NewBusinessCache(client, cfg.Cache, log)
		defer cache.Close()
		b, err := cache.GetBusiness(ctx, args[1])
		if err != nil {
			return err
		}
		fmt.Printf("%s (%s)\n%s, %s\ntrust score %d, %s\n%s\n",
			b.Name, b.Industry, b.City, b.Country, b.TrustScore, b.VerificationStatus, b.Description)
		return nil

	case "profile":
		profile := store.NewBusinessProfileStore(client, log)
		profile.Load(ctx)
		snap := profile.Snapshot()
		if snap.Err != nil {
			return snap.Err
		}
		b := snap.Business
		fmt.Printf("%s (%s)\n%s, %s\ntrust score %d, %s\nservices: %v\n",
			b.Name, b.Industry, b.City, b.Country, b.TrustScore, b.VerificationStatus, b.Services)
		return nil

	case "rename":
		if len(args) < 2 {
			return fmt.Errorf("rename requires the new business name")
		}
		profile := store.NewBusinessProfileStore(client, log)
		profile.Load(ctx)
		if snap := profile.Snapshot(); snap.Err != nil {
			return snap.Err
		}
		name := args[1]
		if err := profile.UpdateProfile(ctx, models.BusinessUpdate{Name: &name}); err != nil {
			return err
		}
		// Drop any cached copy so the next lookup sees the new name.
		cache := api.NewBusinessCache(client, cfg.Cache, log)
		defer cache.Close()
		cache.Invalidate(ctx, profile.Snapshot().Business.ID)
		fmt.Println("renamed to", name)
		return nil

	case "requests":
		requests := store.NewConnectionRequestsStore(client, api.ConnectionListParams{Page: page, Limit: limit}, log)
		requests.Refetch(ctx)
		snap := requests.Snapshot()
		if snap.Err != nil {
			return snap.Err
		}
		for _, r := range snap.Requests {
			name := r.RequesterID
			if r.Requester != nil {
				name = r.Requester.Name
			}
			fmt.Printf("%-8s from %-24s %s\n", r.ID, name, r.Message)
		}
		fmt.Printf("%d pending\n", snap.Pagination.Total)
		return nil

	case "accept", "reject":
		if len(args) < 2 {
			return fmt.Errorf("%s requires a request id", command)
		}
		requests := store.NewConnectionRequestsStore(client, api.ConnectionListParams{}, log)
		requests.Refetch(ctx)
		if command == "accept" {
			if err := requests.Accept(ctx, args[1]); err != nil {
				return err
			}
			fmt.Println("accepted", args[1])
		} else {
			if err := requests.Reject(ctx, args[1]); err != nil {
				return err
			}
			fmt.Println("rejected", args[1])
		}
		return nil

	case "connect":
		if len(args) < 3 {
			return fmt.Errorf("connect requires a business id and a message")
		}
		connections := store.NewConnectionsStore(client, api.ConnectionListParams{}, log)
		conn, err := connections.Send(ctx, args[1], args[2])
		if err != nil {
			return err
		}
		fmt.Println("request sent:", conn.ID)
		return nil

	case "notifications":
		notifications := store.NewNotificationsStore(client, api.NotificationListParams{Page: page, Limit: limit}, log)
		notifications.Refetch(ctx)
		snap := notifications.Snapshot()
		if snap.Err != nil {
			return snap.Err
		}
		for _, n := range snap.Notifications {
			marker := " "
			if !n.Read {
				marker = "*"
			}
			fmt.Printf("%s %-8s %-28s %s\n", marker, n.ID, n.Title, n.Message)
		}
		fmt.Printf("%d unread\n", snap.UnreadCount)
		return nil

	case "read":
		if len(args) < 2 {
			return fmt.Errorf("read requires a notification id")
		}
		notifications := store.NewNotificationsStore(client, api.NotificationListParams{}, log)
		notifications.Refetch(ctx)
		if err := notifications.MarkRead(ctx, args[1]); err != nil {
			return err
		}
		fmt.Println("marked read:", args[1])
		return nil

	case "read-all":
		notifications := store.NewNotificationsStore(client, api.NotificationListParams{}, log)
		notifications.Refetch(ctx)
		if err := notifications.MarkAllRead(ctx); err != nil {
			return err
		}
		fmt.Println("all notifications marked read")
		return nil

	default:
		usage()
		return fmt.Errorf("unknown command %q", command)
	}
}

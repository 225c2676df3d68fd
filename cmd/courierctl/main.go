// courierctl is a terminal front for the sonic-delivery courier API: sign
// in, browse assigned orders, walk them through their status transitions,
// manage delivery notes and read the earnings dashboard.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/ichaoui56/sonic-courier/internal/app"
	"github.com/ichaoui56/sonic-courier/internal/config"
	"github.com/ichaoui56/sonic-courier/internal/entities"
	"github.com/ichaoui56/sonic-courier/internal/gateway"
	"github.com/ichaoui56/sonic-courier/internal/session"
	"github.com/ichaoui56/sonic-courier/internal/viewmodel"
)

func main() {
	conf := config.New()
	logger := newLogger(conf.Env)
	panicIfErr("invalid config", conf.Validate())

	application := app.New(logger, conf)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	application.Start(ctx)
	defer application.Stop()

	if err := run(ctx, application, os.Args[1:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func init() {
	godotenv.Load()
}

func newLogger(env string) *slog.Logger {
	switch env {
	case "production":
		return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	default:
		return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}
}

func panicIfErr(prefix string, err error) {
	if err != nil {
		panic(prefix + ": " + err.Error())
	}
}

const usage = `usage: courierctl <command> [args]

  login <email> <password>          sign in and persist the token
  logout                            sign out (local first, server best-effort)
  me                                show the signed-in courier profile
  profile <name> [phone]            update the profile
  latest                            latest assigned orders
  orders                            all visible orders
  history [filter] [pages]          order history (filter: All|Delivered|Cancelled|Delayed)
  order <id>                        order detail with attempts and notes
  accept <id>                       accept an order
  status <id> <STATUS> [reason...]  submit a status transition
  attempts <id>                     delivery attempt log
  notes <id>                        list delivery notes
  note-add <id> <text> [--private]  add a note
  note-del <id> <noteId>            delete a note
  finance                           earnings / COD dashboard
  stats                             monthly performance stats
`

func run(ctx context.Context, a *app.Application, args []string) error {
	if len(args) == 0 {
		fmt.Print(usage)
		return nil
	}
	cmd, rest := args[0], args[1:]

	if cmd == "login" {
		if len(rest) != 2 {
			return errors.New("login needs <email> <password>")
		}
		if err := a.Session.SignIn(ctx, rest[0], rest[1]); err != nil {
			return err
		}
		fmt.Printf("signed in as %s\n", a.Session.User().Name)
		return nil
	}

	if cmd != "help" && a.Session.Status() != session.StatusSignedIn {
		return errors.New("not signed in; run: courierctl login <email> <password>")
	}

	switch cmd {
	case "help":
		fmt.Print(usage)
		return nil

	case "logout":
		a.Session.SignOut(ctx)
		fmt.Println("signed out")
		return nil

	case "me":
		printUser(a.Session.User())
		return nil

	case "profile":
		if len(rest) < 1 {
			return errors.New("profile needs <name> [phone]")
		}
		update := gateway.ProfileUpdate{Name: rest[0]}
		if len(rest) > 1 {
			update.Phone = &rest[1]
		}
		if err := a.Session.UpdateProfile(ctx, update); err != nil {
			return err
		}
		printUser(a.Session.User())
		return nil

	case "latest":
		if err := a.Latest.Load(ctx); err != nil {
			return err
		}
		printOrders(a.Latest.Orders())
		return nil

	case "orders":
		orders, err := a.Gateway.AllOrders(ctx, a.Session.Token())
		if err != nil {
			return err
		}
		printOrders(orders)
		return nil

	case "history":
		filter := "All"
		pages := 1
		if len(rest) > 0 {
			filter = rest[0]
		}
		if len(rest) > 1 {
			n, err := strconv.Atoi(rest[1])
			if err != nil {
				return fmt.Errorf("bad page count %q", rest[1])
			}
			pages = n
		}
		if err := a.History.SetFilter(ctx, filter); err != nil {
			return err
		}
		for i := 1; i < pages && a.History.HasMore(); i++ {
			if err := a.History.LoadMore(ctx); err != nil {
				return err
			}
		}
		printOrders(a.History.Orders())
		fmt.Printf("%d of %d loaded, more=%v\n", len(a.History.Orders()), a.History.TotalCount(), a.History.HasMore())
		return nil

	case "order":
		id, err := orderID(rest)
		if err != nil {
			return err
		}
		detail, err := a.Orders.OrderDetail(ctx, id)
		if err != nil {
			return err
		}
		printDetail(detail.Order)
		if detail.AttemptsErr != nil {
			fmt.Println("attempts unavailable:", detail.AttemptsErr)
		} else {
			printAttempts(detail.Attempts)
		}
		if detail.NotesErr != nil {
			fmt.Println("notes unavailable:", detail.NotesErr)
		} else {
			printNotes(detail.Notes)
		}
		return nil

	case "accept":
		id, err := orderID(rest)
		if err != nil {
			return err
		}
		order, err := a.Transitions.Accept(ctx, id)
		if err != nil {
			return err
		}
		fmt.Printf("order %s is now %s\n", order.OrderCode, order.Status)
		printTransitionOptions(a, order)
		return nil

	case "status":
		if len(rest) < 2 {
			return errors.New("status needs <id> <STATUS> [reason...]")
		}
		id, err := orderID(rest[:1])
		if err != nil {
			return err
		}
		selected := entities.OrderStatus(strings.ToUpper(rest[1]))
		reason := strings.Join(rest[2:], " ")
		order, err := a.Transitions.Submit(ctx, id, &selected, reason)
		if err != nil {
			return err
		}
		fmt.Printf("order %s is now %s\n", order.OrderCode, order.Status)
		printTransitionOptions(a, order)
		return nil

	case "attempts":
		id, err := orderID(rest)
		if err != nil {
			return err
		}
		attempts, err := a.Orders.Attempts(ctx, id)
		if err != nil {
			return err
		}
		printAttempts(attempts)
		return nil

	case "notes":
		id, err := orderID(rest)
		if err != nil {
			return err
		}
		notes, err := a.Orders.Notes(ctx, id)
		if err != nil {
			return err
		}
		printNotes(notes)
		return nil

	case "note-add":
		if len(rest) < 2 {
			return errors.New("note-add needs <id> <text> [--private]")
		}
		id, err := orderID(rest[:1])
		if err != nil {
			return err
		}
		input := gateway.NoteInput{Content: rest[1]}
		if len(rest) > 2 && rest[2] == "--private" {
			input.Private = true
		}
		note, err := a.Orders.CreateNote(ctx, id, input)
		if err != nil {
			return err
		}
		fmt.Printf("note %d added\n", note.ID)
		return nil

	case "note-del":
		if len(rest) != 2 {
			return errors.New("note-del needs <id> <noteId>")
		}
		id, err := orderID(rest[:1])
		if err != nil {
			return err
		}
		noteID, err := strconv.ParseInt(rest[1], 10, 64)
		if err != nil {
			return fmt.Errorf("bad note id %q", rest[1])
		}
		if err := a.Orders.DeleteNote(ctx, id, noteID); err != nil {
			return err
		}
		fmt.Println("note deleted")
		return nil

	case "finance":
		data, err := a.Gateway.Finance(ctx, a.Session.Token())
		if err != nil {
			return err
		}
		printFinance(data)
		return nil

	case "stats":
		stats, err := a.Gateway.OrderStats(ctx, a.Session.Token())
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d orders, %d delivered, %d cancelled, %d delayed\n",
			stats.Month, stats.TotalOrders, stats.Delivered, stats.Cancelled, stats.Delayed)
		fmt.Printf("earnings %.2f, success %.1f%%, streak %d, avg delivery %s\n",
			stats.TotalEarnings, stats.SuccessRate, stats.CurrentStreak, stats.AvgDeliveryTime)
		return nil

	default:
		fmt.Print(usage)
		return fmt.Errorf("unknown command %q", cmd)
	}
}

func orderID(args []string) (int64, error) {
	if len(args) < 1 {
		return 0, errors.New("an order id is required")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad order id %q", args[0])
	}
	return id, nil
}

func printUser(u entities.User) {
	fmt.Printf("%s <%s>\n", u.Name, u.Email)
	if u.Phone != "" {
		fmt.Println("phone:", u.Phone)
	}
	fmt.Printf("city: %s, vehicle: %s, base fee: %.2f, active: %v\n",
		u.Courier.City, u.Courier.VehicleType, u.Courier.BaseFee, u.Courier.Active)
}

func printOrders(orders []entities.Order) {
	for _, o := range orders {
		fmt.Printf("%-8d %-12s %-10s %-20s %s, %s  %.2f %s\n",
			o.ID, o.OrderCode, viewmodel.DisplayStatus(o.Status),
			o.CustomerName, o.Address, o.City, o.TotalPrice, o.PaymentMethod)
	}
}

func printDetail(o entities.Order) {
	fmt.Printf("order %s (#%d): %s\n", o.OrderCode, o.ID, o.Status)
	fmt.Printf("customer: %s %s, %s, %s\n", o.CustomerName, o.CustomerPhone, o.Address, o.City)
	if o.Note != "" {
		fmt.Println("note:", o.Note)
	}
	for _, item := range o.Items {
		fmt.Printf("  %dx %-24s %.2f\n", item.Quantity, item.Product.Name, item.Price)
	}
	fmt.Printf("total: %.2f (%s)\n", o.TotalPrice, o.PaymentMethod)
	if o.DeliveredAt != nil {
		fmt.Println("delivered at:", o.DeliveredAt.Format("2006-01-02 15:04"))
	}
}

func printTransitionOptions(a *app.Application, order entities.Order) {
	options := a.Transitions.Options(order)
	if len(options) == 0 {
		fmt.Println("no further actions available")
		return
	}
	names := make([]string, len(options))
	for i, s := range options {
		names[i] = s.String()
	}
	fmt.Println("next:", strings.Join(names, ", "))
}

func printAttempts(attempts []entities.DeliveryAttempt) {
	for _, at := range attempts {
		line := fmt.Sprintf("attempt %d at %s -> %s", at.AttemptNumber, at.AttemptedAt.Format("2006-01-02 15:04"), at.Status)
		if at.Reason != "" {
			line += " (" + at.Reason + ")"
		}
		fmt.Println(line)
	}
}

func printNotes(notes []entities.DeliveryNote) {
	for _, n := range notes {
		visibility := "shared"
		if n.Private {
			visibility = "private"
		}
		fmt.Printf("note %d [%s] %s\n", n.ID, visibility, n.Content)
	}
}

func printFinance(d entities.FinanceData) {
	fmt.Printf("balance %.2f, earned %.2f, COD collected %.2f, pending %.2f\n",
		d.CurrentStatus.AvailableBalance, d.CurrentStatus.TotalEarned,
		d.CurrentStatus.CollectedCOD, d.CurrentStatus.PendingEarnings)
	fmt.Printf("deliveries %d (%d successful), COD orders %d for %.2f, transferred %.2f\n",
		d.Statistics.TotalDeliveries, d.Statistics.SuccessfulDeliveries,
		d.Statistics.CODOrdersCount, d.Statistics.TotalCODAmount, d.Statistics.TotalTransferred)
	for _, tr := range d.MoneyTransfers {
		fmt.Printf("transfer %d: %.2f (%s) %s\n", tr.ID, tr.Amount, tr.Status, tr.CreatedAt.Format("2006-01-02"))
	}
}

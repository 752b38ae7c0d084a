// Package main implements the storefront command line client. It is the
// presentation layer: it builds the engine, renders query results, and
// translates business refusals into exit messages.
package main

import (
	"fmt"
	"log"
	"log/slog"
	"os"
	"strings"

	"github.com/abgdnv/storefront/internal/catalog"
	"github.com/abgdnv/storefront/internal/config"
	"github.com/abgdnv/storefront/internal/engine"
	"github.com/abgdnv/storefront/internal/persistence"
	"github.com/abgdnv/storefront/internal/store"
	"github.com/abgdnv/storefront/pkg/bootstrap"
	"github.com/abgdnv/storefront/pkg/configloader"
	"github.com/go-playground/validator/v10"
	"github.com/urfave/cli/v2"
)

const appName = "storefront"

// appCtx bundles everything one command invocation needs.
type appCtx struct {
	cfg    *config.Config
	logger *slog.Logger
	kv     persistence.KV
	engine *engine.Engine
}

// setup loads configuration, builds the logger, loads the catalog, and
// rehydrates the engine from the last snapshot. A debug listener is
// subscribed so every mutation is visible in the logs.
func setup() (*appCtx, error) {
	cfg, err := configloader.Load[*config.Config](appName)
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger := bootstrap.NewLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	cat, err := catalog.Load(cfg.Catalog.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	kv := persistence.NewFileKV(cfg.State.Dir)
	gateway := persistence.NewSnapshotStore(kv, logger)
	eng := engine.New(cat, gateway, logger)
	eng.Subscribe(func() {
		logger.Debug("store changed", "cart_items", eng.CartItemCount(), "orders", len(eng.Orders()))
	})

	return &appCtx{cfg: cfg, logger: logger, kv: kv, engine: eng}, nil
}

func main() {
	app := &cli.App{
		Name:  appName,
		Usage: "browse the catalog, manage cart and wishlist, place orders",
		Commands: []*cli.Command{
			productsCommand(),
			cartCommand(),
			wishlistCommand(),
			ordersCommand(),
			themeCommand(),
		},
	}
	if err := app.Run(os.Args); err != nil {
		log.Fatalf("storefront: %v", err)
	}
}

func productsCommand() *cli.Command {
	return &cli.Command{
		Name:  "products",
		Usage: "list catalog products, optionally filtered",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "search", Usage: "substring match on name or description"},
			&cli.StringFlag{Name: "category", Usage: "electronics|clothing|books|home|sports|beauty"},
			&cli.Int64Flag{Name: "min-price", Usage: "minimum price in cents"},
			&cli.Int64Flag{Name: "max-price", Usage: "maximum price in cents (0 = unbounded)"},
			&cli.Float64Flag{Name: "min-rating", Usage: "minimum rating 0..5"},
		},
		Action: func(c *cli.Context) error {
			app, err := setup()
			if err != nil {
				return err
			}
			products := app.engine.FilterProducts(catalog.Query{
				Term:      c.String("search"),
				Category:  catalog.Category(c.String("category")),
				MinPrice:  c.Int64("min-price"),
				MaxPrice:  c.Int64("max-price"),
				MinRating: c.Float64("min-rating"),
			})
			for _, p := range products {
				wish := ""
				if app.engine.IsInWishlist(p.ID) {
					wish = " *"
				}
				fmt.Printf("%-12s %s %-30s %-12s %8s  %.1f (%d) stock=%d%s\n",
					p.ID, p.Glyph, p.Name, p.Category, money(p.Price), p.Rating, p.Reviews, p.Stock, wish)
			}
			return nil
		},
	}
}

func cartCommand() *cli.Command {
	return &cli.Command{
		Name:  "cart",
		Usage: "show or modify the shopping cart",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print cart contents and total",
				Action: func(c *cli.Context) error {
					app, err := setup()
					if err != nil {
						return err
					}
					for _, it := range app.engine.Cart() {
						fmt.Printf("%-12s %-30s x%-3d %8s\n",
							it.Product.ID, it.Product.Name, it.Quantity, money(it.Product.Price*int64(it.Quantity)))
					}
					fmt.Printf("items: %d  total: %s\n", app.engine.CartItemCount(), money(app.engine.CartTotal()))
					return nil
				},
			},
			{
				Name:      "add",
				Usage:     "add a product to the cart",
				ArgsUsage: "<product-id>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "qty", Value: 1, Usage: "units to add"},
				},
				Action: func(c *cli.Context) error {
					app, err := setup()
					if err != nil {
						return err
					}
					if err := app.engine.AddToCart(c.Args().First(), c.Int("qty")); err != nil {
						return fmt.Errorf("cannot add to cart: %w", err)
					}
					fmt.Printf("added, cart now holds %d items\n", app.engine.CartItemCount())
					return nil
				},
			},
			{
				Name:      "set",
				Usage:     "set the quantity of a cart line (0 removes it)",
				ArgsUsage: "<product-id>",
				Flags: []cli.Flag{
					&cli.IntFlag{Name: "qty", Required: true, Usage: "new quantity"},
				},
				Action: func(c *cli.Context) error {
					app, err := setup()
					if err != nil {
						return err
					}
					if err := app.engine.UpdateCartQuantity(c.Args().First(), c.Int("qty")); err != nil {
						return fmt.Errorf("cannot update quantity: %w", err)
					}
					fmt.Printf("cart now holds %d items\n", app.engine.CartItemCount())
					return nil
				},
			},
			{
				Name:      "remove",
				Usage:     "remove a product from the cart",
				ArgsUsage: "<product-id>",
				Action: func(c *cli.Context) error {
					app, err := setup()
					if err != nil {
						return err
					}
					if !app.engine.RemoveFromCart(c.Args().First()) {
						fmt.Println("product was not in the cart")
						return nil
					}
					fmt.Println("removed")
					return nil
				},
			},
			{
				Name:  "clear",
				Usage: "empty the cart",
				Action: func(c *cli.Context) error {
					app, err := setup()
					if err != nil {
						return err
					}
					app.engine.ClearCart()
					fmt.Println("cart cleared")
					return nil
				},
			},
		},
	}
}

func wishlistCommand() *cli.Command {
	return &cli.Command{
		Name:  "wishlist",
		Usage: "show or toggle wishlist entries",
		Subcommands: []*cli.Command{
			{
				Name:  "show",
				Usage: "print wishlist products",
				Action: func(c *cli.Context) error {
					app, err := setup()
					if err != nil {
						return err
					}
					for _, p := range app.engine.WishlistProducts() {
						fmt.Printf("%-12s %s %-30s %8s\n", p.ID, p.Glyph, p.Name, money(p.Price))
					}
					return nil
				},
			},
			{
				Name:      "toggle",
				Usage:     "add or remove a product from the wishlist",
				ArgsUsage: "<product-id>",
				Action: func(c *cli.Context) error {
					app, err := setup()
					if err != nil {
						return err
					}
					if app.engine.ToggleWishlist(c.Args().First()) {
						fmt.Println("added to wishlist")
					} else {
						fmt.Println("removed from wishlist")
					}
					return nil
				},
			},
		},
	}
}

func ordersCommand() *cli.Command {
	return &cli.Command{
		Name:  "orders",
		Usage: "list orders and check out the cart",
		Subcommands: []*cli.Command{
			{
				Name:  "list",
				Usage: "print order history, most recent first",
				Action: func(c *cli.Context) error {
					app, err := setup()
					if err != nil {
						return err
					}
					for _, o := range app.engine.Orders() {
						fmt.Printf("%s  %s  %-10s %8s  %d items\n",
							o.ID, o.CreatedAt.Format("2006-01-02 15:04"), o.Status, money(o.Total), len(o.Items))
					}
					return nil
				},
			},
			{
				Name:      "show",
				Usage:     "print one order",
				ArgsUsage: "<order-id>",
				Action: func(c *cli.Context) error {
					app, err := setup()
					if err != nil {
						return err
					}
					o, ok := app.engine.OrderByID(c.Args().First())
					if !ok {
						return fmt.Errorf("order %q not found", c.Args().First())
					}
					fmt.Printf("order %s  %s  status=%s\n", o.ID, o.CreatedAt.Format("2006-01-02 15:04"), o.Status)
					fmt.Printf("customer: %s <%s>, %s, %s %s\n",
						o.Customer.Name, o.Customer.Email, o.Customer.Address, o.Customer.City, o.Customer.PostalCode)
					for _, it := range o.Items {
						fmt.Printf("  %-12s %-30s x%-3d %8s\n",
							it.Product.ID, it.Product.Name, it.Quantity, money(it.Product.Price*int64(it.Quantity)))
					}
					fmt.Printf("total: %s\n", money(o.Total))
					return nil
				},
			},
			{
				Name:  "create",
				Usage: "create an order from the current cart",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "name", Required: true},
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "phone", Required: true},
					&cli.StringFlag{Name: "address", Required: true},
					&cli.StringFlag{Name: "city", Required: true},
					&cli.StringFlag{Name: "postal-code", Required: true},
				},
				Action: func(c *cli.Context) error {
					app, err := setup()
					if err != nil {
						return err
					}
					info := store.CustomerInfo{
						Name:       c.String("name"),
						Email:      c.String("email"),
						Phone:      c.String("phone"),
						Address:    c.String("address"),
						City:       c.String("city"),
						PostalCode: c.String("postal-code"),
					}
					// Checkout field validation happens here, at the
					// presentation boundary, not inside the engine.
					if err := validator.New().Struct(info); err != nil {
						return fmt.Errorf("invalid customer info: %w", err)
					}
					order, err := app.engine.CreateOrder(info)
					if err != nil {
						return fmt.Errorf("cannot create order: %w", err)
					}
					fmt.Printf("order %s created, total %s\n", order.ID, money(order.Total))
					return nil
				},
			},
			{
				Name:      "status",
				Usage:     "set an order's status",
				ArgsUsage: "<order-id> <pending|processing|completed|cancelled>",
				Action: func(c *cli.Context) error {
					app, err := setup()
					if err != nil {
						return err
					}
					status, err := store.ParseStatus(c.Args().Get(1))
					if err != nil {
						return fmt.Errorf("invalid status %q: %w", c.Args().Get(1), err)
					}
					if err := app.engine.UpdateOrderStatus(c.Args().First(), status); err != nil {
						return fmt.Errorf("cannot update status: %w", err)
					}
					fmt.Println("status updated")
					return nil
				},
			},
		},
	}
}

// themeCommand toggles the dark-mode flag. The flag lives under its own
// KV key, owned by the presentation layer; the engine never reads it.
func themeCommand() *cli.Command {
	return &cli.Command{
		Name:  "theme",
		Usage: "show or toggle the dark theme flag",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "toggle", Usage: "flip the flag"},
		},
		Action: func(c *cli.Context) error {
			app, err := setup()
			if err != nil {
				return err
			}
			dark := false
			if data, ok, err := app.kv.Get(persistence.ThemeKey); err == nil && ok {
				dark = strings.TrimSpace(string(data)) == "true"
			}
			if c.Bool("toggle") {
				dark = !dark
				if err := app.kv.Set(persistence.ThemeKey, []byte(fmt.Sprintf("%t", dark))); err != nil {
					return fmt.Errorf("failed to save theme flag: %w", err)
				}
			}
			fmt.Printf("dark theme: %t\n", dark)
			return nil
		},
	}
}

// money formats cents as a dollar amount.
func money(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

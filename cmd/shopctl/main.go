package main

import (
	"bufio"
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"strings"

	"boutique-client/internal/admin"
	"boutique-client/internal/api"
	"boutique-client/internal/cart"
	"boutique-client/internal/catalog"
	"boutique-client/internal/checkout"
	"boutique-client/internal/config"
	"boutique-client/internal/credential"
	"boutique-client/internal/domain"
	"boutique-client/internal/forms"
	"boutique-client/internal/session"

	"github.com/joho/godotenv"
)

const usageText = `usage: shopctl <command> [flags]

catalog:
  products [-category c]     list products
  product -id <id>           show one product
  reviews -product <id>      list a product's reviews

account:
  register -name -email -phone -password
  login -email -password
  logout
  whoami
  profile [-name] [-email] [-phone] [-password]

cart:
  cart                       show the cart
  cart-add -product <id> [-size s] [-qty n]
  cart-set -item <id> -qty n
  cart-remove -item <id>

checkout:
  checkout -address -city -postal -country -phone
           [-shipping standard|express|free] [-payment mpesa|card|bank]

reviews:
  my-reviews
  review-add -product <id> -rating n [-comment text]
  review-delete -id <id>

admin:
  admin-products
  admin-add -name -price -category [-stock] [-description] [-images a,b] [-sizes S,M]
  admin-update -id <id> (same flags as admin-add)
  admin-delete -id <id>

other:
  contact -email -message [-name]
  subscribe -email
`

type app struct {
	sessions *session.Store
	cart     *cart.Store
	catalog  *catalog.Client
	admin    *admin.Client
	forms    *forms.Client
	client   *api.Client
	logger   *log.Logger
}

func main() {
	_ = godotenv.Load()
	cfg := config.FromEnv()
	logger := log.New(os.Stderr, "[shopctl] ", 0)

	creds := credential.NewStore(cfg.TokenFile)
	client := api.New(cfg.APIBaseURL, creds)
	sessions := session.New(client, creds, logger, cfg.SessionCheckTimeout)

	a := &app{
		sessions: sessions,
		cart:     cart.New(client, sessions, logger),
		catalog:  catalog.New(client),
		admin:    admin.New(client),
		forms:    forms.New(client),
		client:   client,
		logger:   logger,
	}

	if len(os.Args) < 2 {
		fmt.Print(usageText)
		os.Exit(1)
	}

	ctx := context.Background()
	if err := a.run(ctx, os.Args[1], os.Args[2:]); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func (a *app) run(ctx context.Context, command string, args []string) error {
	switch command {
	case "products":
		return a.cmdProducts(ctx, args)
	case "product":
		return a.cmdProduct(ctx, args)
	case "reviews":
		return a.cmdReviews(ctx, args)
	case "register":
		return a.cmdRegister(ctx, args)
	case "login":
		return a.cmdLogin(ctx, args)
	case "logout":
		a.sessions.Logout()
		fmt.Println("signed out")
		return nil
	case "whoami":
		return a.cmdWhoami(ctx)
	case "profile":
		return a.cmdProfile(ctx, args)
	case "cart":
		return a.cmdCart(ctx)
	case "cart-add":
		return a.cmdCartAdd(ctx, args)
	case "cart-set":
		return a.cmdCartSet(ctx, args)
	case "cart-remove":
		return a.cmdCartRemove(ctx, args)
	case "checkout":
		return a.cmdCheckout(ctx, args)
	case "my-reviews":
		return a.cmdMyReviews(ctx)
	case "review-add":
		return a.cmdReviewAdd(ctx, args)
	case "review-delete":
		return a.cmdReviewDelete(ctx, args)
	case "admin-products":
		return a.cmdAdminProducts(ctx)
	case "admin-add":
		return a.cmdAdminSave(ctx, args, false)
	case "admin-update":
		return a.cmdAdminSave(ctx, args, true)
	case "admin-delete":
		return a.cmdAdminDelete(ctx, args)
	case "contact":
		return a.cmdContact(ctx, args)
	case "subscribe":
		return a.cmdSubscribe(ctx, args)
	default:
		fmt.Print(usageText)
		return fmt.Errorf("unknown command %q", command)
	}
}

// requireSession resolves the startup session check before an authenticated
// command runs.
func (a *app) requireSession(ctx context.Context) error {
	fmt.Println("checking session...")
	if a.sessions.CheckSession(ctx) != session.StateAuthenticated {
		return fmt.Errorf("not signed in (run 'shopctl login')")
	}
	return nil
}

func (a *app) cmdProducts(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("products", flag.ExitOnError)
	category := fs.String("category", "", "filter by category")
	fs.Parse(args)

	products, err := a.catalog.Products(ctx)
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}
	for _, p := range catalog.FilterByCategory(products, *category) {
		sizes := strings.Join(p.Sizes, ",")
		if sizes == "" {
			sizes = domain.OneSize
		}
		fmt.Printf("%s  %-30s KES %9.2f  %-12s stock %3d  sizes: %s\n",
			p.ID, p.Name, p.Price, p.Category, p.Stock, sizes)
	}
	return nil
}

func (a *app) cmdProduct(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("product", flag.ExitOnError)
	id := fs.String("id", "", "product id")
	fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	p, err := a.catalog.Product(ctx, *id)
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}
	fmt.Printf("%s\n%s\nKES %.2f | %s | stock %d\n", p.Name, p.Description, p.Price, p.Category, p.Stock)
	if p.HasSizes() {
		fmt.Println("sizes:", strings.Join(p.Sizes, ", "))
	} else {
		fmt.Println("sizes:", domain.OneSize)
	}
	for _, img := range p.Images {
		fmt.Println("image:", img)
	}
	return nil
}

func (a *app) cmdReviews(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("reviews", flag.ExitOnError)
	product := fs.String("product", "", "product id")
	fs.Parse(args)
	if *product == "" {
		return fmt.Errorf("-product is required")
	}

	reviews, err := a.catalog.Reviews(ctx, *product)
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}
	for _, r := range reviews {
		fmt.Printf("%s  %d/5  %q by %s\n", r.ID, r.Rating, r.Comment, r.UserName)
	}
	return nil
}

func (a *app) cmdRegister(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	name := fs.String("name", "", "full name")
	email := fs.String("email", "", "email")
	phone := fs.String("phone", "", "phone")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	res := a.sessions.Register(ctx, *name, *email, *phone, *password)
	fmt.Println(res.Message)
	if !res.Success {
		os.Exit(1)
	}
	return nil
}

func (a *app) cmdLogin(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email")
	password := fs.String("password", "", "password")
	fs.Parse(args)

	fmt.Println("signing in...")
	res := a.sessions.Login(ctx, *email, *password)
	if !res.Success {
		return fmt.Errorf("%s", res.Message)
	}
	fmt.Printf("signed in as %s <%s>\n", res.Identity.Name, res.Identity.Email)
	return nil
}

func (a *app) cmdWhoami(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	id := a.sessions.Identity()
	fmt.Printf("%s <%s> phone %s admin=%v\n", id.Name, id.Email, id.Phone, id.IsAdmin)
	return nil
}

func (a *app) cmdProfile(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("profile", flag.ExitOnError)
	name := fs.String("name", "", "new name")
	email := fs.String("email", "", "new email")
	phone := fs.String("phone", "", "new phone")
	password := fs.String("password", "", "new password")
	fs.Parse(args)

	if err := a.requireSession(ctx); err != nil {
		return err
	}
	res := a.sessions.UpdateProfile(ctx, session.ProfileUpdate{
		Name: *name, Email: *email, Phone: *phone, Password: *password,
	})
	if !res.Success {
		return fmt.Errorf("%s", res.Message)
	}
	fmt.Println(res.Message)
	return nil
}

func (a *app) cmdCart(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	if res := a.cart.Refresh(ctx); !res.Success {
		return fmt.Errorf("%s", res.Message)
	}
	a.printCart()
	return nil
}

func (a *app) printCart() {
	items := a.cart.Items()
	if len(items) == 0 {
		fmt.Println("cart is empty")
		return
	}
	for _, it := range items {
		fmt.Printf("%s  %-30s size %-9s x%d  @ KES %.2f\n", it.ID, it.Name, it.Size, it.Quantity, it.Price)
	}
	fmt.Printf("%d items, total KES %.2f\n", a.cart.TotalItems(), a.cart.TotalPrice())
}

func (a *app) cmdCartAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart-add", flag.ExitOnError)
	productID := fs.String("product", "", "product id")
	size := fs.String("size", "", "size")
	qty := fs.Int("qty", 1, "quantity")
	fs.Parse(args)
	if *productID == "" {
		return fmt.Errorf("-product is required")
	}

	if err := a.requireSession(ctx); err != nil {
		return err
	}
	// Snapshot the unit price from the live catalog at add time.
	p, err := a.catalog.Product(ctx, *productID)
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}
	if res := a.cart.Add(ctx, p.ID, *size, *qty, p.Price); !res.Success {
		return fmt.Errorf("%s", res.Message)
	}
	a.printCart()
	return nil
}

func (a *app) cmdCartSet(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart-set", flag.ExitOnError)
	item := fs.String("item", "", "cart item id")
	qty := fs.Int("qty", 1, "quantity; below 1 removes the item")
	fs.Parse(args)
	if *item == "" {
		return fmt.Errorf("-item is required")
	}

	if err := a.requireSession(ctx); err != nil {
		return err
	}
	if res := a.cart.Refresh(ctx); !res.Success {
		return fmt.Errorf("%s", res.Message)
	}
	if res := a.cart.SetQuantity(ctx, *item, *qty); !res.Success {
		return fmt.Errorf("%s", res.Message)
	}
	a.printCart()
	return nil
}

func (a *app) cmdCartRemove(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("cart-remove", flag.ExitOnError)
	item := fs.String("item", "", "cart item id")
	fs.Parse(args)
	if *item == "" {
		return fmt.Errorf("-item is required")
	}

	if err := a.requireSession(ctx); err != nil {
		return err
	}
	if res := a.cart.Remove(ctx, *item); !res.Success {
		return fmt.Errorf("%s", res.Message)
	}
	a.printCart()
	return nil
}

func (a *app) cmdCheckout(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("checkout", flag.ExitOnError)
	address := fs.String("address", "", "street address")
	city := fs.String("city", "", "city")
	postal := fs.String("postal", "", "postal code")
	country := fs.String("country", "Kenya", "country")
	phone := fs.String("phone", "", "phone")
	shipping := fs.String("shipping", string(checkout.ShippingStandard), "shipping method")
	payment := fs.String("payment", string(checkout.PaymentMpesa), "payment method")
	fs.Parse(args)

	if err := a.requireSession(ctx); err != nil {
		return err
	}
	if res := a.cart.Refresh(ctx); !res.Success {
		return fmt.Errorf("%s", res.Message)
	}

	w := checkout.New(a.client, a.cart, a.logger)
	w.SetAddress(domain.ShippingAddress{
		Address:    *address,
		City:       *city,
		PostalCode: *postal,
		Country:    *country,
		Phone:      *phone,
	})
	if err := w.Continue(); err != nil {
		return err
	}
	if err := w.SetShipping(checkout.ShippingMethod(*shipping)); err != nil {
		return err
	}
	if err := w.Continue(); err != nil {
		return err
	}
	if err := w.SetPayment(checkout.PaymentMethod(*payment)); err != nil {
		return err
	}
	if err := w.Continue(); err != nil {
		return err
	}

	fmt.Printf("subtotal KES %.2f + tax KES %.2f + shipping KES %.2f = KES %.2f\n",
		w.Subtotal(), w.Tax(), w.ShippingCost(), w.Total())
	fmt.Println("placing order...")
	if res := w.PlaceOrder(ctx); !res.Success {
		return fmt.Errorf("%s", res.Message)
	}

	fmt.Println(w.Instructions())
	fmt.Print("press Enter once payment is on its way... ")
	bufio.NewReader(os.Stdin).ReadString('\n')
	if res := w.DismissInstructions(ctx); !res.Success {
		a.logger.Printf("refresh after order: %s", res.Message)
	}
	fmt.Println("thank you for shopping with us")
	return nil
}

func (a *app) cmdMyReviews(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	reviews, err := a.catalog.MyReviews(ctx)
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}
	for _, r := range reviews {
		fmt.Printf("%s  product %s  %d/5  %s\n", r.ID, r.ProductID, r.Rating, r.Comment)
	}
	return nil
}

func (a *app) cmdReviewAdd(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("review-add", flag.ExitOnError)
	product := fs.String("product", "", "product id")
	rating := fs.Int("rating", 0, "rating 1-5")
	comment := fs.String("comment", "", "comment")
	fs.Parse(args)

	if err := a.requireSession(ctx); err != nil {
		return err
	}
	res := a.catalog.AddReview(ctx, *product, *rating, *comment)
	if !res.Success {
		return fmt.Errorf("%s", res.Message)
	}
	fmt.Println(res.Message)
	return nil
}

func (a *app) cmdReviewDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("review-delete", flag.ExitOnError)
	id := fs.String("id", "", "review id")
	fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	if err := a.requireSession(ctx); err != nil {
		return err
	}
	res := a.catalog.DeleteReview(ctx, *id)
	if !res.Success {
		return fmt.Errorf("%s", res.Message)
	}
	fmt.Println(res.Message)
	return nil
}

func (a *app) cmdAdminProducts(ctx context.Context) error {
	if err := a.requireSession(ctx); err != nil {
		return err
	}
	products, err := a.admin.List(ctx)
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}
	for _, p := range products {
		fmt.Printf("%s  %-30s KES %9.2f  %-12s stock %3d  images %d\n",
			p.ID, p.Name, p.Price, p.Category, p.Stock, len(p.Images))
	}
	return nil
}

// productInputFlags binds the admin product form fields to fs and returns a
// builder to call after parsing.
func productInputFlags(fs *flag.FlagSet) func() admin.ProductInput {
	name := fs.String("name", "", "product name")
	description := fs.String("description", "", "description")
	price := fs.Float64("price", 0, "price in KES")
	category := fs.String("category", "", "category")
	stock := fs.Int("stock", 0, "units in stock")
	images := fs.String("images", "", "comma-separated image URLs")
	sizes := fs.String("sizes", "", "comma-separated sizes")
	return func() admin.ProductInput {
		return admin.ProductInput{
			Name:        *name,
			Description: *description,
			Price:       *price,
			Category:    *category,
			Stock:       *stock,
			Images:      splitList(*images),
			Sizes:       splitList(*sizes),
		}
	}
}

func splitList(raw string) []string {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		out = append(out, strings.TrimSpace(p))
	}
	return out
}

func (a *app) cmdAdminSave(ctx context.Context, args []string, update bool) error {
	cmdName := "admin-add"
	if update {
		cmdName = "admin-update"
	}
	fs := flag.NewFlagSet(cmdName, flag.ExitOnError)
	var id *string
	if update {
		id = fs.String("id", "", "product id")
	}
	buildInput := productInputFlags(fs)
	fs.Parse(args)
	if update && *id == "" {
		return fmt.Errorf("-id is required")
	}

	if err := a.requireSession(ctx); err != nil {
		return err
	}

	var (
		p   *domain.Product
		err error
	)
	if update {
		p, err = a.admin.Update(ctx, *id, buildInput())
	} else {
		p, err = a.admin.Create(ctx, buildInput())
	}
	if err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}
	fmt.Printf("saved %s (%s)\n", p.Name, p.ID)
	return nil
}

func (a *app) cmdAdminDelete(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("admin-delete", flag.ExitOnError)
	id := fs.String("id", "", "product id")
	fs.Parse(args)
	if *id == "" {
		return fmt.Errorf("-id is required")
	}

	if err := a.requireSession(ctx); err != nil {
		return err
	}
	if err := a.admin.Delete(ctx, *id); err != nil {
		return fmt.Errorf("%s", api.UserMessage(err))
	}
	fmt.Println("product deleted")
	return nil
}

func (a *app) cmdContact(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("contact", flag.ExitOnError)
	name := fs.String("name", "", "your name")
	email := fs.String("email", "", "your email")
	message := fs.String("message", "", "message")
	fs.Parse(args)

	res := a.forms.Contact(ctx, *name, *email, *message)
	if !res.Success {
		return fmt.Errorf("%s", res.Message)
	}
	fmt.Println(res.Message)
	return nil
}

func (a *app) cmdSubscribe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("subscribe", flag.ExitOnError)
	email := fs.String("email", "", "your email")
	fs.Parse(args)

	res := a.forms.Subscribe(ctx, *email)
	if !res.Success {
		return fmt.Errorf("%s", res.Message)
	}
	fmt.Println(res.Message)
	return nil
}

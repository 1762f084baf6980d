package app

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/go-faster/errors"

	"github.com/patioshop/storefront/internal/domain/checkout"
	"github.com/patioshop/storefront/internal/session"
	"github.com/patioshop/storefront/pkg/money"
)

// loop reads one command per line from stdin and applies it to the session.
type loop struct {
	sess *session.Session
	in   *bufio.Scanner
	out  *os.File
}

func newLoop(sess *session.Session) *loop {
	return &loop{
		sess: sess,
		in:   bufio.NewScanner(os.Stdin),
		out:  os.Stdout,
	}
}

func (l *loop) printf(format string, args ...any) {
	fmt.Fprintf(l.out, format, args...)
}

func (l *loop) run(ctx context.Context) error {
	if l.sess.Config.Maintenance() {
		l.printf("La tienda está en mantenimiento. Volvé más tarde.\n")
		return nil
	}

	l.printf("patioshop — escribí 'help' para ver los comandos\n")
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		l.printf("> ")
		if !l.in.Scan() {
			return l.in.Err()
		}
		fields := strings.Fields(l.in.Text())
		if len(fields) == 0 {
			continue
		}

		if fields[0] == "quit" || fields[0] == "exit" {
			return nil
		}
		if err := l.dispatch(ctx, fields[0], fields[1:]); err != nil {
			l.printf("error: %v\n", err)
		}
	}
}

func (l *loop) dispatch(ctx context.Context, cmd string, args []string) error {
	switch cmd {
	case "help":
		l.printf("products | categories | cart | add <id> | remove <id> | qty <id> <n>\n")
		l.printf("coupon <code> | nocoupon | clear | checkout | config | quit\n")
		return nil
	case "products":
		for _, p := range l.sess.Products() {
			l.printf("%4d  %-40s %12s  %s\n", p.ID, p.Name, money.FormatARS(p.Price), p.Category)
		}
		return nil
	case "categories":
		for _, name := range l.sess.Categories() {
			l.printf("- %s\n", name)
		}
		return nil
	case "cart":
		l.showCart()
		return nil
	case "add":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		return l.sess.AddToCart(ctx, id)
	case "remove":
		id, err := parseID(args)
		if err != nil {
			return err
		}
		l.sess.Cart.RemoveItem(id)
		return nil
	case "qty":
		if len(args) != 2 {
			return errors.New("usage: qty <id> <n>")
		}
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return errors.Wrap(err, "parse id")
		}
		n, err := strconv.Atoi(args[1])
		if err != nil {
			return errors.Wrap(err, "parse quantity")
		}
		l.sess.Cart.SetQuantity(id, n)
		return nil
	case "coupon":
		if len(args) != 1 {
			return errors.New("usage: coupon <code>")
		}
		if err := l.sess.ApplyCouponCode(ctx, args[0]); err != nil {
			return err
		}
		l.printf("cupón aplicado\n")
		return nil
	case "nocoupon":
		l.sess.Cart.RemoveCoupon()
		return nil
	case "clear":
		l.sess.Cart.Clear()
		return nil
	case "config":
		cfg := l.sess.Config.Current()
		l.printf("theme=%s primary=%s secondary=%s enabled=%v slides=%d\n",
			cfg.Theme, cfg.PrimaryColor, cfg.SecondaryColor, cfg.StoreEnabled, len(cfg.CarouselImages))
		return nil
	case "checkout":
		return l.checkout(ctx)
	default:
		return errors.Errorf("unknown command %q", cmd)
	}
}

func parseID(args []string) (int64, error) {
	if len(args) != 1 {
		return 0, errors.New("usage: <command> <id>")
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		return 0, errors.Wrap(err, "parse id")
	}
	return id, nil
}

func (l *loop) showCart() {
	lines := l.sess.Cart.Lines()
	if len(lines) == 0 {
		l.printf("el carrito está vacío\n")
		return
	}
	for _, line := range lines {
		l.printf("%4d  %-40s x%-3d %12s\n",
			line.ProductID, line.Name, line.Quantity, money.FormatARS(line.LineTotal()))
	}
	t := l.sess.Cart.Totals()
	l.printf("subtotal: %s\n", money.FormatARS(t.Subtotal))
	if coupon := l.sess.Cart.AppliedCoupon(); coupon != nil {
		l.printf("descuento (%s): -%s\n", coupon.Code, money.FormatARS(t.Discount))
	}
	l.printf("total: %s (%d items)\n", money.FormatARS(t.Total), t.Items)
}

// checkout walks the two-step flow: details until validation passes, then
// payment selection and submission.
func (l *loop) checkout(ctx context.Context) error {
	ctrl, err := l.sess.BeginCheckout()
	if err != nil {
		return err
	}
	defer ctrl.Close()

	for ctrl.Step() == checkout.StepDetails {
		l.promptDetails(ctrl.Draft())
		if err := ctrl.Next(); err != nil {
			if errors.Is(err, checkout.ErrValidation) {
				for field, msg := range ctrl.Errors() {
					l.printf("  %s: %s\n", field, msg)
				}
				continue
			}
			return err
		}
	}

	l.promptPayment(ctrl.Draft())
	result, err := ctrl.Submit(ctx)
	if err != nil {
		if errors.Is(err, checkout.ErrValidation) {
			for field, msg := range ctrl.Errors() {
				l.printf("  %s: %s\n", field, msg)
			}
		}
		return err
	}

	if result.GatewayURL != "" {
		l.printf("abrí este enlace para pagar: %s\n", result.GatewayURL)
	} else {
		l.printf("¡pedido confirmado! número: %s\n", result.OrderID)
	}
	return nil
}

func (l *loop) promptDetails(d *checkout.Draft) {
	l.prompt("Nombre", &d.Name)
	l.prompt("Apellido", &d.Surname)
	l.prompt("Teléfono", &d.Phone)
	l.prompt("DNI o CUIT", &d.TaxID)
	l.prompt("Email (opcional)", &d.Email)

	var method string
	l.prompt("Entrega [envio/retiro]", &method)
	if method != "" {
		d.DeliveryMethod = checkout.DeliveryMethod(method)
	}

	switch d.DeliveryMethod {
	case checkout.DeliveryPickup:
		var branch string
		l.prompt(fmt.Sprintf("Sucursal %v", checkout.Branches), &branch)
		if branch != "" {
			d.Branch = branch
		}
	default:
		l.prompt("Calle", &d.AddressStreet)
		l.prompt("Número", &d.AddressNumber)
		l.prompt("Piso (opcional)", &d.AddressFloor)
		l.prompt("Dpto (opcional)", &d.AddressApartment)
		l.prompt("Barrio (opcional)", &d.AddressNeighborhood)
		l.prompt("Ciudad", &d.AddressCity)
		l.prompt("Código Postal (opcional)", &d.AddressZipCode)
		l.prompt("Notas (opcional)", &d.Notes)
	}
}

func (l *loop) promptPayment(d *checkout.Draft) {
	var method string
	l.prompt("Pago [coordinate/mercadopago]", &method)
	if method != "" {
		d.PaymentMethod = checkout.PaymentMethod(method)
	}
}

// prompt reads one line into target, keeping the current value when the
// customer just presses enter.
func (l *loop) prompt(label string, target *string) {
	if *target != "" {
		l.printf("%s [%s]: ", label, *target)
	} else {
		l.printf("%s: ", label)
	}
	if !l.in.Scan() {
		return
	}
	if text := strings.TrimSpace(l.in.Text()); text != "" {
		*target = text
	}
}

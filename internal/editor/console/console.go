// Package console — текстовый хост формы редактора: читает команды построчно
// и печатает состояние формы после изменений.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/DRSN-tech/product-admin/internal/domain"
	"github.com/DRSN-tech/product-admin/internal/editor"
	"github.com/DRSN-tech/product-admin/pkg/e"
	"github.com/DRSN-tech/product-admin/pkg/logger"
)

const help = `commands:
  title <text> | description <text> | price <n> | pricecol <n> | flavors <a, b>
  category <id> | property <name> <value> | props
  tier add | tier set <i> weight|priceUnit <value> | tier rm <i>
  upload <file>... | images <url>... | image rm <i>
  show | submit | help | quit`

// Console связывает editor.Form с потоками ввода и вывода.
type Console struct {
	form *editor.Form
	out  io.Writer

	mu    sync.Mutex
	last  editor.Snapshot
	saved bool

	readFile func(name string) ([]byte, error)
}

func New(api editor.CatalogAPI, existing *domain.Product, out io.Writer, log logger.Logger) *Console {
	c := &Console{out: out, readFile: os.ReadFile}
	c.form = editor.New(editor.Deps{
		API:       api,
		Navigator: editor.NavigatorFunc(c.navigate),
		Render:    c.render,
		Logger:    log,
	}, existing)
	return c
}

// Run загружает категории и выполняет команды до quit, конца ввода или успешного сохранения.
func (c *Console) Run(ctx context.Context, in io.Reader) error {
	if err := c.form.LoadCategories(ctx); err != nil {
		fmt.Fprintf(c.out, "categories unavailable: %v\n", err)
	}
	c.printSnapshot()

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		quit, err := c.Exec(ctx, scanner.Text())
		if err != nil {
			fmt.Fprintf(c.out, "error: %v\n", err)
		}
		if quit || c.Saved() {
			return nil
		}
	}

	return scanner.Err()
}

// Exec выполняет одну команду. quit сообщает, что пользователь вышел.
func (c *Console) Exec(ctx context.Context, line string) (quit bool, err error) {
	cmd, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)

	switch cmd {
	case "":
		return false, nil
	case "quit", "exit":
		return true, nil
	case "help":
		fmt.Fprintln(c.out, help)
	case "show":
		c.printSnapshot()
	case "title":
		c.form.SetTitle(rest)
	case "description":
		c.form.SetDescription(rest)
	case "price":
		c.form.SetPrice(rest)
	case "pricecol":
		c.form.SetPriceCOL(rest)
	case "flavors":
		c.form.SetFlavors(rest)
	case "category":
		c.form.SetCategory(rest)
	case "property":
		name, value, ok := strings.Cut(rest, " ")
		if !ok {
			return false, e.NewValidationError("property", "usage: property <name> <value>")
		}
		c.form.SetProperty(name, strings.TrimSpace(value))
	case "props":
		return false, c.printProperties()
	case "tier":
		return false, c.execTier(strings.Fields(rest))
	case "upload":
		return false, c.upload(ctx, strings.Fields(rest))
	case "images":
		c.form.ReorderImages(strings.Fields(rest))
	case "image":
		args := strings.Fields(rest)
		if len(args) != 2 || args[0] != "rm" {
			return false, e.NewValidationError("images", "usage: image rm <i>")
		}
		i, err := strconv.Atoi(args[1])
		if err != nil {
			return false, e.NewValidationError("images", "index must be a number")
		}
		return false, c.form.RemoveImage(i)
	case "submit":
		if err := c.form.Submit(ctx); err != nil {
			c.printSnapshot()
			return false, err
		}
	default:
		return false, fmt.Errorf("unknown command %q, type help", cmd)
	}

	return false, nil
}

// Saved сообщает, что товар сохранён и форма ушла на список товаров.
func (c *Console) Saved() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.saved
}

func (c *Console) execTier(args []string) error {
	switch {
	case len(args) == 1 && args[0] == "add":
		c.form.AddTier()
		return nil
	case len(args) == 2 && args[0] == "rm":
		i, err := strconv.Atoi(args[1])
		if err != nil {
			return e.NewValidationError("weightAndPrices", "index must be a number")
		}
		return c.form.RemoveTier(i)
	case len(args) >= 3 && args[0] == "set":
		i, err := strconv.Atoi(args[1])
		if err != nil {
			return e.NewValidationError("weightAndPrices", "index must be a number")
		}
		return c.form.UpdateTier(i, editor.TierField(args[2]), strings.Join(args[3:], " "))
	default:
		return e.NewValidationError("weightAndPrices", "usage: tier add | tier set <i> <field> <value> | tier rm <i>")
	}
}

// upload читает файлы с диска и определяет их тип по содержимому.
func (c *Console) upload(ctx context.Context, paths []string) error {
	files := make([]editor.File, 0, len(paths))
	for _, p := range paths {
		data, err := c.readFile(p)
		if err != nil {
			return e.Wrap(p, err)
		}
		files = append(files, editor.File{
			Name:        filepath.Base(p),
			ContentType: http.DetectContentType(data),
			Data:        data,
		})
	}

	if err := c.form.UploadImages(ctx, files); err != nil {
		return err
	}
	fmt.Fprintf(c.out, "images: %s\n", strings.Join(c.snapshot().Images, " "))
	return nil
}

func (c *Console) printProperties() error {
	props, err := c.form.PropertiesToFill()
	if err != nil {
		return err
	}
	selected := c.snapshot().Properties
	for _, p := range props {
		fmt.Fprintf(c.out, "%s [%s] = %q\n", p.Name, strings.Join(p.Values, ", "), selected[p.Name])
	}
	return nil
}

func (c *Console) render(s editor.Snapshot) {
	c.mu.Lock()
	c.last = s
	c.mu.Unlock()
}

func (c *Console) navigate(path string) {
	c.mu.Lock()
	c.saved = true
	c.mu.Unlock()
	fmt.Fprintf(c.out, "saved, back to %s\n", path)
}

func (c *Console) snapshot() editor.Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last
}

func (c *Console) printSnapshot() {
	s := c.form.Snapshot()

	id := s.ID
	if id == "" {
		id = "(new)"
	}
	fmt.Fprintf(c.out, "product %s\n", id)
	fmt.Fprintf(c.out, "  title: %s\n  description: %s\n", s.Title, s.Description)
	fmt.Fprintf(c.out, "  price: %s  priceCOL: %s\n", s.Price, s.PriceCOL)
	fmt.Fprintf(c.out, "  category: %s  flavors: %s\n", s.Category, s.Flavors)
	for i, t := range s.Tiers {
		fmt.Fprintf(c.out, "  tier %d: %s = %s\n", i, t.Weight, t.PriceUnit)
	}
	for i, img := range s.Images {
		fmt.Fprintf(c.out, "  image %d: %s\n", i, img)
	}

	if len(s.FieldErrors) > 0 {
		fields := make([]string, 0, len(s.FieldErrors))
		for f := range s.FieldErrors {
			fields = append(fields, f)
		}
		sort.Strings(fields)
		for _, f := range fields {
			fmt.Fprintf(c.out, "  ! %s: %s\n", f, s.FieldErrors[f])
		}
	}
}

// Command products prints the products of a file, loaded by services that
// are wired through the process-wide di container.
//
//	go run ./cmd/products -f examples/products/testdata/products.csv
//	PRODUCTS_LOG_LEVEL=debug go run ./cmd/products -f products.csv --json
//
// Flags fall back to PRODUCTS_* environment variables, which are seeded from
// .env (or the file named by PRODUCTS_ENV_FILE) when present.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sghaida/wired/di"
	"github.com/sghaida/wired/examples/products"
)

var errNoFile = errors.New("products: no input file (use --file or PRODUCTS_FILE)")

// containerFunc builds the container run resolves from: di.New in tests,
// installContainer in main.
type containerFunc func(tbl *di.Table, opts ...di.Option) (*di.Container, error)

// installContainer builds the process-wide container. A container installed
// earlier is reused as is, with the logger it was installed with.
func installContainer(tbl *di.Table, opts ...di.Option) (*di.Container, error) {
	c, err := di.Install(tbl, opts...)
	if errors.Is(err, di.ErrAlreadyInstalled) {
		return c, nil
	}
	return c, err
}

func run(args []string, stdout, stderr io.Writer, newContainer containerFunc) error {
	if err := loadDotenv(envFile()); err != nil {
		return err
	}

	var cli CLI
	parser, err := kong.New(&cli,
		kong.Name("products"),
		kong.Description("Prints the products of a file."),
		kong.Writers(stdout, stderr),
		kong.UsageOnError(),
	)
	if err != nil {
		return err
	}
	if _, err := parser.Parse(args); err != nil {
		return err
	}
	if cli.File == "" {
		return errNoFile
	}

	log, err := newLogger(cli.LogLevel, zapcore.AddSync(stderr))
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	tbl, err := products.Bindings()
	if err != nil {
		return err
	}
	c, err := newContainer(tbl, di.WithLogger(log), di.WithValidation())
	if err != nil {
		return err
	}

	svc, err := di.Get[products.ProductService](c)
	if err != nil {
		return err
	}
	items, err := svc.GetAllFromFile(cli.File)
	if err != nil {
		return err
	}
	log.Info("loaded products", zap.String("file", cli.File), zap.Int("count", len(items)))

	if cli.JSON {
		enc := json.NewEncoder(stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}
	for _, p := range items {
		if _, err := fmt.Fprintf(stdout, "%d\t%s\t%s\t%.2f\n", p.ID, p.Title, p.Category, p.Price); err != nil {
			return err
		}
	}
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr, installContainer); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

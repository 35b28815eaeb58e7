// seed importa un catálogo de productos (CSV) para un usuario existente.
//
// Uso: go run ./cmd/seed -email ana@example.com [-file catalogo.csv]
// Columnas: name,price,stock,image,description (con encabezado).
// Acepta UTF-8 o ISO-8859-1 (exportes de Excel en español).
package main

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/jhoicas/retail-api/internal/application/dto"
	"github.com/jhoicas/retail-api/internal/application/usecase"
	"github.com/jhoicas/retail-api/internal/infrastructure/postgres"
	"github.com/jhoicas/retail-api/pkg/config"
	"github.com/jhoicas/retail-api/pkg/logger"
	"github.com/shopspring/decimal"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"
)

var catalogColumns = []string{"name", "price", "stock", "image", "description"}

func main() {
	email := flag.String("email", "", "email del usuario dueño de los productos")
	file := flag.String("file", "catalogo.csv", "ruta del CSV")
	flag.Parse()
	if *email == "" {
		fmt.Fprintln(os.Stderr, "Uso: seed -email <email> [-file catalogo.csv]")
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel})

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatal().Err(err).Str("file", *file).Msg("abrir CSV")
	}
	items, err := parseCatalog(decodeLatin1(raw))
	if err != nil {
		log.Fatal().Err(err).Msg("leer catálogo")
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	user, err := postgres.NewUserRepository(pool).GetByEmail(ctx, strings.ToLower(*email))
	if err != nil {
		log.Fatal().Err(err).Msg("buscar usuario")
	}
	if user == nil {
		log.Fatal().Str("email", *email).Msg("usuario no encontrado")
	}

	products := usecase.NewProductUseCase(postgres.NewProductRepository(pool))
	created := 0
	for i, in := range items {
		if _, err := products.Create(ctx, user.ID, in); err != nil {
			log.Error().Err(err).Int("line", i+2).Str("name", in.Name).Msg("producto omitido")
			continue
		}
		created++
	}
	log.Info().Int("created", created).Int("total", len(items)).Str("user", user.Email).Msg("catálogo importado")
}

// decodeLatin1 devuelve un lector UTF-8: si el archivo no es UTF-8 válido se asume ISO-8859-1.
func decodeLatin1(raw []byte) io.Reader {
	raw = bytes.TrimPrefix(raw, []byte("\xef\xbb\xbf"))
	if utf8.Valid(raw) {
		return bytes.NewReader(raw)
	}
	return transform.NewReader(bytes.NewReader(raw), charmap.ISO8859_1.NewDecoder())
}

// parseCatalog lee el CSV (coma o punto y coma) y arma las solicitudes de producto.
func parseCatalog(r io.Reader) ([]dto.ProductRequest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	cr := csv.NewReader(bytes.NewReader(data))
	if first, _, _ := bytes.Cut(data, []byte("\n")); bytes.Count(first, []byte(";")) > bytes.Count(first, []byte(",")) {
		cr.Comma = ';'
	}
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("encabezado: %w", err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.ToLower(strings.TrimSpace(h))] = i
	}
	for _, col := range catalogColumns {
		if _, ok := idx[col]; !ok {
			return nil, fmt.Errorf("falta la columna %q", col)
		}
	}

	var out []dto.ProductRequest
	for line := 2; ; line++ {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("línea %d: %w", line, err)
		}
		field := func(col string) string { return strings.TrimSpace(rec[idx[col]]) }

		// "1.234,50" y "1234.50" son el mismo precio
		priceStr := field("price")
		if strings.Contains(priceStr, ",") {
			priceStr = strings.ReplaceAll(strings.ReplaceAll(priceStr, ".", ""), ",", ".")
		}
		price, err := decimal.NewFromString(priceStr)
		if err != nil {
			return nil, fmt.Errorf("línea %d: precio %q inválido", line, field("price"))
		}
		stock, err := strconv.Atoi(field("stock"))
		if err != nil {
			return nil, fmt.Errorf("línea %d: stock %q inválido", line, field("stock"))
		}
		out = append(out, dto.ProductRequest{
			Name:        field("name"),
			Price:       price,
			Stock:       &stock,
			Image:       field("image"),
			Description: field("description"),
		})
	}
	return out, nil
}

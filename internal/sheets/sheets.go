// Package sheets reads ticker/price rows from a Google spreadsheet.
package sheets

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"

	"trading-plan/internal/store"
	"trading-plan/internal/trace"
	"trading-plan/internal/types"

	"golang.org/x/oauth2"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"
	sheetsapi "google.golang.org/api/sheets/v4"
)

var (
	ErrAuthentication = errors.New("google sheets authentication failed")
	ErrTimeout        = errors.New("google sheets request timed out")
	ErrHTTP           = errors.New("google sheets api error")
)

// Params selects the sheet range and the credentials used to read it.
type Params struct {
	ServiceAccountFile string
	Scopes             []string
	SpreadsheetID      string
	Range              string
	// ClientOptions replace the service account credentials when set.
	ClientOptions []option.ClientOption
}

// ParamsFromConfig copies the google_sheets section of cfg.
func ParamsFromConfig(cfg *store.Config) Params {
	return Params{
		ServiceAccountFile: cfg.GoogleSheets.ServiceAccountFile,
		Scopes:             cfg.GoogleSheets.Scopes,
		SpreadsheetID:      cfg.GoogleSheets.SpreadsheetID,
		Range:              cfg.GoogleSheets.Range,
	}
}

// Source is a read-only price table backed by one spreadsheet range.
type Source struct {
	p   Params
	svc *sheetsapi.Service
}

func NewSource(p Params) *Source {
	return &Source{p: p}
}

// FetchPrices authenticates on first use and performs a single values.get.
// Column A is the ticker, column B the price; rows without a price get
// types.MissingPrice. No retries are made.
func (s *Source) FetchPrices(ctx context.Context) (types.Prices, error) {
	ctx, span := trace.StartSpan(ctx, "sheets-values-get")
	defer span.End()

	if err := s.connect(ctx); err != nil {
		return types.Prices{}, err
	}

	resp, err := s.svc.Spreadsheets.Values.Get(s.p.SpreadsheetID, s.p.Range).Context(ctx).Do()
	if err != nil {
		return types.Prices{}, classify(err)
	}
	return rowsToPrices(resp.Values), nil
}

func (s *Source) connect(ctx context.Context) error {
	if s.svc != nil {
		return nil
	}
	opts := s.p.ClientOptions
	if len(opts) == 0 {
		opts = []option.ClientOption{
			option.WithCredentialsFile(s.p.ServiceAccountFile),
			option.WithScopes(s.p.Scopes...),
		}
	}
	svc, err := sheetsapi.NewService(ctx, opts...)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	s.svc = svc
	return nil
}

func rowsToPrices(rows [][]interface{}) types.Prices {
	out := make(types.Prices, len(rows))
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		ticker := strings.TrimSpace(fmt.Sprint(row[0]))
		if ticker == "" {
			continue
		}
		price := types.MissingPrice
		if len(row) > 1 {
			price = fmt.Sprint(row[1])
		}
		out[ticker] = price
	}
	return out
}

func classify(err error) error {
	var gerr *googleapi.Error
	if errors.As(err, &gerr) {
		if gerr.Code == http.StatusUnauthorized || gerr.Code == http.StatusForbidden {
			return fmt.Errorf("%w: %w", ErrAuthentication, err)
		}
		return fmt.Errorf("%w: %w", ErrHTTP, err)
	}
	var rerr *oauth2.RetrieveError
	if errors.As(err, &rerr) {
		return fmt.Errorf("%w: %w", ErrAuthentication, err)
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}
	return err
}

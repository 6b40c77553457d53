package portfolio

import (
	"bytes"
	"context"
	"errors"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silvamenu/momoney/internal/common"
	"github.com/silvamenu/momoney/internal/interfaces"
	"github.com/silvamenu/momoney/internal/models"
)

// --- Mocks ---

type mockFinanceStore struct {
	interfaces.FinanceStore
	investments []models.Investment
	err         error
}

func (m *mockFinanceStore) ListInvestments(_ context.Context, _ string) ([]models.Investment, error) {
	return m.investments, m.err
}

type mockStorage struct {
	finance *mockFinanceStore
}

func (m *mockStorage) UserStore() interfaces.UserStore       { return nil }
func (m *mockStorage) FinanceStore() interfaces.FinanceStore { return m.finance }
func (m *mockStorage) Close() error                          { return nil }

type mockQuoteService struct {
	quotes   map[string]*models.Quote
	err      error
	requests [][]string
}

func (m *mockQuoteService) GetQuote(_ context.Context, symbol string) (*models.Quote, error) {
	if q, ok := m.quotes[symbol]; ok {
		return q, nil
	}
	return nil, errors.New("not found")
}

func (m *mockQuoteService) GetQuotes(_ context.Context, symbols []string) (map[string]*models.Quote, error) {
	m.requests = append(m.requests, symbols)
	return m.quotes, m.err
}

// --- Tests ---

func TestGetPortfolio_EnrichesTickeredHoldings(t *testing.T) {
	storage := &mockStorage{finance: &mockFinanceStore{investments: []models.Investment{
		{Name: "Apple", Type: "stock", Ticker: "AAPL", Quantity: 10, AveragePrice: 150},
		{Name: "CDB", Type: "fixed_income", Quantity: 1, AveragePrice: 5000},
	}}}
	quotes := &mockQuoteService{quotes: map[string]*models.Quote{
		"AAPL": {Symbol: "AAPL", Price: 230},
	}}

	svc := NewService(storage, quotes, common.NewSilentLogger())

	v, err := svc.GetPortfolio(context.Background(), "user:abc")
	require.NoError(t, err)

	require.Len(t, quotes.requests, 1)
	assert.Equal(t, []string{"AAPL"}, quotes.requests[0], "untickered holdings never hit the quote service")

	require.Len(t, v.Holdings, 2)
	assert.Equal(t, 2300.0, v.Holdings[0].CurrentValue)
	assert.Equal(t, 5000.0, v.Holdings[1].CurrentValue)
	assert.Equal(t, 6500.0, v.TotalInvested)
	assert.Equal(t, 7300.0, v.CurrentValue)
}

func TestGetPortfolio_NoTickersSkipsQuoteService(t *testing.T) {
	storage := &mockStorage{finance: &mockFinanceStore{investments: []models.Investment{
		{Name: "Poupança", Type: "savings", Quantity: 1, AveragePrice: 1000},
	}}}
	quotes := &mockQuoteService{}

	svc := NewService(storage, quotes, common.NewSilentLogger())

	v, err := svc.GetPortfolio(context.Background(), "user:abc")
	require.NoError(t, err)
	assert.Empty(t, quotes.requests)
	assert.Equal(t, 1000.0, v.CurrentValue)
}

func TestGetPortfolio_StoreErrorPropagates(t *testing.T) {
	storage := &mockStorage{finance: &mockFinanceStore{err: errors.New("db down")}}
	svc := NewService(storage, &mockQuoteService{}, common.NewSilentLogger())

	_, err := svc.GetPortfolio(context.Background(), "user:abc")
	assert.ErrorContains(t, err, "failed to list investments")
}

func TestRenderAllocationChart_ProducesPNG(t *testing.T) {
	svc := NewService(nil, nil, common.NewSilentLogger())

	v := Valuate([]models.Holding{
		{Name: "Apple", Ticker: "AAPL", Quantity: 10, AveragePrice: 150},
		{Name: "Vale", Ticker: "VALE3", Quantity: 100, AveragePrice: 60},
	}, nil)

	data, err := svc.RenderAllocationChart(v)
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err, "output should be a decodable PNG")
}

func TestAllocationValues_OffsettingPositionsKeepFiniteLabels(t *testing.T) {
	v := &models.PortfolioValuation{
		Holdings: []models.EnrichedHolding{
			{Holding: models.Holding{Name: "Long"}, CurrentValue: 1000},
			{Holding: models.Holding{Name: "Short"}, CurrentValue: -1000},
		},
	}

	values := allocationValues(v)
	require.Len(t, values, 1, "negative positions are not charted")
	assert.Equal(t, "Long (100%)", values[0].Label)
}

func TestRenderAllocationChart_EmptyPortfolio(t *testing.T) {
	svc := NewService(nil, nil, common.NewSilentLogger())

	data, err := svc.RenderAllocationChart(Valuate(nil, nil))
	require.NoError(t, err)

	_, err = png.Decode(bytes.NewReader(data))
	assert.NoError(t, err)
}

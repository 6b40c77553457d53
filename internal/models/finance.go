package models

import "time"

// Transaction types. The product is pt-BR throughout, values preserved
// from the production schema.
const (
	TransactionIncome  = "renda"
	TransactionExpense = "despesa"
)

// Goal status values.
const (
	GoalInProgress = "em andamento"
	GoalCompleted  = "concluida"
)

// Transaction is a single income or expense entry.
type Transaction struct {
	ID          string    `json:"id"`
	UserID      string    `json:"user_id"`
	Type        string    `json:"type"` // "renda" or "despesa"
	Amount      float64   `json:"amount"`
	Description string    `json:"description,omitempty"`
	Category    string    `json:"category,omitempty"`
	Date        time.Time `json:"date"`
}

// Goal is a savings goal tracked on the dashboard.
type Goal struct {
	ID            string    `json:"id"`
	UserID        string    `json:"user_id"`
	Name          string    `json:"name"`
	TargetAmount  float64   `json:"target_amount"`
	CurrentAmount float64   `json:"current_amount"`
	Deadline      string    `json:"deadline,omitempty"`
	Category      string    `json:"category,omitempty"`
	Status        string    `json:"status"`
	CreatedAt     time.Time `json:"created_at"`
}

// Investment is a user's recorded position. AveragePrice is the cost basis;
// Price is the recorded unit price and CurrentPrice the latest known market
// price (either may be absent depending on how the row was created).
type Investment struct {
	ID           string    `json:"id"`
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	Type         string    `json:"type"`
	Ticker       string    `json:"ticker,omitempty"`
	Quantity     float64   `json:"quantity,omitempty"`
	AveragePrice float64   `json:"average_price,omitempty"`
	Price        float64   `json:"price,omitempty"`
	CurrentPrice float64   `json:"current_price,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

// Holding converts an investment row into the valuator's read-only input.
// AveragePrice falls back to Price when no explicit cost basis was recorded.
func (i *Investment) Holding() Holding {
	avg := i.AveragePrice
	if avg == 0 {
		avg = i.Price
	}
	return Holding{
		ID:           i.ID,
		Name:         i.Name,
		Type:         i.Type,
		Ticker:       i.Ticker,
		Quantity:     i.Quantity,
		AveragePrice: avg,
	}
}

// TransactionSummary sums the last 30 days of transactions.
// JSON keys are preserved from the production prompt contract.
type TransactionSummary struct {
	Rendas   float64 `json:"rendas"`
	Despesas float64 `json:"despesas"`
	Saldo    float64 `json:"saldo"`
}

// GoalProgress is an active goal shaped for the prompt context.
type GoalProgress struct {
	Nome                 string  `json:"nome"`
	ValorAlvo            float64 `json:"valor_alvo"`
	ValorAtual           float64 `json:"valor_atual"`
	Prazo                string  `json:"prazo,omitempty"`
	Categoria            string  `json:"categoria,omitempty"`
	PorcentagemConcluida string  `json:"porcentagem_concluida"`
}

// InvestmentItem is an investment shaped for the prompt context.
type InvestmentItem struct {
	Nome  string  `json:"nome"`
	Tipo  string  `json:"tipo"`
	Valor float64 `json:"valor"`
}

// InvestmentSummary totals the user's investments.
type InvestmentSummary struct {
	Total      int              `json:"total"`
	ValorTotal float64          `json:"valor_total"`
	Lista      []InvestmentItem `json:"lista"`
}

// FinancialContext is the structured summary handed to the language model
// as grounding data. Built fresh per request, discarded afterwards.
type FinancialContext struct {
	Transacoes    TransactionSummary `json:"transacoes_ultimos_30_dias"`
	MetasAtivas   []GoalProgress     `json:"metas_ativas"`
	Investimentos InvestmentSummary  `json:"investimentos"`
}

// AssistantAnswer is the generated reply returned to the caller.
type AssistantAnswer struct {
	Answer string `json:"answer"`
	Model  string `json:"model"`
}

package reporting

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/mamadbah2/rancher/internal/domain/models"
	"github.com/mamadbah2/rancher/internal/service/ledger"
	"github.com/mamadbah2/rancher/internal/state"
)

// averageMonthDays converts a daily feed total into a monthly projection.
const averageMonthDays = 30.44

// DashboardStats is the front-page financial summary of the herd.
type DashboardStats struct {
	ActiveAnimals    int          `json:"activeAnimals"`
	TotalCost        float64      `json:"totalCost"`
	AvgCostPerAnimal float64      `json:"avgCostPerAnimal"`
	CostBreakdown    []CostBucket `json:"costBreakdown"`
}

// CostBucket is one cost-type slice of the dashboard breakdown.
type CostBucket struct {
	Type   models.CostType `json:"type"`
	Amount float64         `json:"amount"`
}

// SaleProfit describes the financial outcome of one sold animal.
type SaleProfit struct {
	AnimalID      string  `json:"animalId"`
	SalePrice     float64 `json:"salePrice"`
	HandlingCosts float64 `json:"handlingCosts"`
	TotalInvested float64 `json:"totalInvested"`
	Profit        float64 `json:"profit"`
	ROI           float64 `json:"roi"`
}

// FeedProjection estimates feed usage and stock runway for a batch.
type FeedProjection struct {
	CalfCount       int     `json:"calfCount"`
	AdultCount      int     `json:"adultCount"`
	IntakeCalf      float64 `json:"intakeCalf"`
	IntakeAdult     float64 `json:"intakeAdult"`
	DailyTotal      float64 `json:"dailyTotal"`
	MonthlyTotal    float64 `json:"monthlyTotal"`
	DailyCost       float64 `json:"dailyCost"`
	DaysOfStockLeft float64 `json:"daysOfStockLeft"`
	DepletionDate   string  `json:"depletionDate,omitempty"`
}

// TypeShare is one cost-type line of a period report, with its share of the
// period total.
type TypeShare struct {
	Type       models.CostType `json:"type"`
	Amount     float64         `json:"amount"`
	Percentage float64         `json:"percentage"`
}

// PeriodReport is a simple profit and loss statement over a date range.
type PeriodReport struct {
	Start          string      `json:"start"`
	End            string      `json:"end"`
	ActiveAnimals  int         `json:"activeAnimals"`
	SoldInPeriod   int         `json:"soldInPeriod"`
	DirectCosts    float64     `json:"directCosts"`
	FixedCosts     float64     `json:"fixedCosts"`
	TotalInvested  float64     `json:"totalInvested"`
	TotalRevenue   float64     `json:"totalRevenue"`
	NetResult      float64     `json:"netResult"`
	AvgCostPerHead float64     `json:"avgCostPerHead"`
	CostsByType    []TypeShare `json:"costsByType"`
}

// Dashboard computes the dashboard stats for a document. Animals that left
// the herd still weigh on the total cost, but the per-head average divides by
// active animals only, and is zero when none remain.
func Dashboard(doc models.Document) DashboardStats {
	var active int
	for _, a := range doc.Animals {
		if a.Status == models.StatusActive {
			active++
		}
	}

	var total float64
	byType := map[models.CostType]float64{}
	for _, c := range doc.Costs {
		total += c.Amount
		byType[c.Type] += c.Amount
	}

	var breakdown []CostBucket
	for _, t := range models.CostTypes {
		if byType[t] > 0 {
			breakdown = append(breakdown, CostBucket{Type: t, Amount: byType[t]})
		}
	}
	sort.Slice(breakdown, func(i, j int) bool { return breakdown[i].Amount > breakdown[j].Amount })

	avg := 0.0
	if active > 0 {
		avg = total / float64(active)
	}

	return DashboardStats{
		ActiveAnimals:    active,
		TotalCost:        total,
		AvgCostPerAnimal: avg,
		CostBreakdown:    breakdown,
	}
}

// AnimalCostTotal sums every cost entry linked to the animal.
func AnimalCostTotal(doc models.Document, animalID string) float64 {
	var total float64
	for _, c := range doc.Costs {
		if c.AnimalID == animalID {
			total += c.Amount
		}
	}
	return total
}

// BatchInvestment sums every cost entry linked to the batch.
func BatchInvestment(doc models.Document, batchID string) float64 {
	var total float64
	for _, c := range doc.Costs {
		if c.BatchID == batchID {
			total += c.Amount
		}
	}
	return total
}

// ComputeSaleProfit derives profit and return on investment for an animal.
// ROI is zero when nothing was invested.
func ComputeSaleProfit(doc models.Document, animal models.Animal) SaleProfit {
	handling := AnimalCostTotal(doc, animal.ID)
	invested := animal.PurchasePrice + handling
	profit := animal.SalePrice - invested

	roi := 0.0
	if invested > 0 {
		roi = profit / invested * 100
	}

	return SaleProfit{
		AnimalID:      animal.ID,
		SalePrice:     animal.SalePrice,
		HandlingCosts: handling,
		TotalInvested: invested,
		Profit:        profit,
		ROI:           roi,
	}
}

// ComputeFeedProjection estimates consumption and stock runway for a batch
// fed with the given item. A zero daily total leaves the runway at zero
// rather than reporting an infinite supply.
func ComputeFeedProjection(doc models.Document, batchID string, item models.InventoryItem, overrideIntake *float64, now time.Time) FeedProjection {
	intakeCalf := item.DailyIntakeCalf
	intakeAdult := item.DailyIntakeAdult
	if overrideIntake != nil {
		intakeCalf = *overrideIntake
		intakeAdult = *overrideIntake
	}

	var calves, adults int
	for _, a := range doc.ActiveAnimalsInBatch(batchID) {
		if a.Category == models.CategoryCalf {
			calves++
		} else {
			adults++
		}
	}

	daily := ledger.DailyConsumption(&doc, batchID, item, overrideIntake)

	proj := FeedProjection{
		CalfCount:    calves,
		AdultCount:   adults,
		IntakeCalf:   intakeCalf,
		IntakeAdult:  intakeAdult,
		DailyTotal:   daily,
		MonthlyTotal: daily * averageMonthDays,
		DailyCost:    daily * item.UnitCost,
	}

	if daily > 0 {
		proj.DaysOfStockLeft = item.Quantity / daily
		proj.DepletionDate = now.AddDate(0, 0, int(math.Floor(proj.DaysOfStockLeft))).Format(models.DateLayout)
	}

	return proj
}

// ComputePeriodReport builds the profit and loss statement for the inclusive
// date range. The end date covers the whole day. Costs with an animal or
// batch link count as direct, the rest as fixed.
func ComputePeriodReport(doc models.Document, start, end time.Time) PeriodReport {
	end = end.Add(24*time.Hour - time.Second)

	var direct, fixed float64
	byType := map[models.CostType]float64{}
	for _, c := range doc.Costs {
		d, err := time.Parse(models.DateLayout, c.Date)
		if err != nil || d.Before(start) || d.After(end) {
			continue
		}
		if c.AnimalID != "" || c.BatchID != "" {
			direct += c.Amount
		} else {
			fixed += c.Amount
		}
		byType[c.Type] += c.Amount
	}

	var active, sold int
	var revenue float64
	for _, a := range doc.Animals {
		if a.Status == models.StatusActive {
			active++
			continue
		}
		if a.Status != models.StatusSold || a.SaleDate == "" {
			continue
		}
		d, err := time.Parse(models.DateLayout, a.SaleDate)
		if err != nil || d.Before(start) || d.After(end) {
			continue
		}
		sold++
		revenue += a.SalePrice
	}

	invested := direct + fixed

	avgPerHead := 0.0
	if active > 0 {
		avgPerHead = invested / float64(active)
	}

	shares := make([]TypeShare, 0, len(models.CostTypes))
	for _, t := range models.CostTypes {
		share := TypeShare{Type: t, Amount: byType[t]}
		if invested > 0 {
			share.Percentage = byType[t] / invested * 100
		}
		shares = append(shares, share)
	}

	return PeriodReport{
		Start:          start.Format(models.DateLayout),
		End:            end.Format(models.DateLayout),
		ActiveAnimals:  active,
		SoldInPeriod:   sold,
		DirectCosts:    direct,
		FixedCosts:     fixed,
		TotalInvested:  invested,
		TotalRevenue:   revenue,
		NetResult:      revenue - invested,
		AvgCostPerHead: avgPerHead,
		CostsByType:    shares,
	}
}

// BuildSummary renders a compact text digest of the current finances, used
// as context for the advisory collaborator.
func BuildSummary(doc models.Document) string {
	stats := Dashboard(doc)

	var b strings.Builder
	fmt.Fprintf(&b, "Animais ativos: %d\n", stats.ActiveAnimals)
	fmt.Fprintf(&b, "Custo total registrado: R$ %.2f\n", stats.TotalCost)
	fmt.Fprintf(&b, "Custo médio por animal: R$ %.2f\n", stats.AvgCostPerAnimal)
	for _, bucket := range stats.CostBreakdown {
		fmt.Fprintf(&b, "- %s: R$ %.2f\n", bucket.Type, bucket.Amount)
	}

	var sold int
	var revenue, profit float64
	for _, a := range doc.Animals {
		if a.Status != models.StatusSold {
			continue
		}
		sold++
		revenue += a.SalePrice
		profit += ComputeSaleProfit(doc, a).Profit
	}
	fmt.Fprintf(&b, "Animais vendidos: %d (receita R$ %.2f, lucro R$ %.2f)\n", sold, revenue, profit)

	return b.String()
}

// Service exposes the aggregations over the shared state store.
type Service struct {
	store  *state.Store
	logger *zap.Logger
	now    func() time.Time
}

// NewService wires a new reporting service instance.
func NewService(store *state.Store, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, logger: logger, now: time.Now}
}

// Dashboard returns the dashboard stats for the current document.
func (s *Service) Dashboard() DashboardStats {
	return Dashboard(s.store.Snapshot())
}

// AnimalCosts returns the cost total linked to an animal.
func (s *Service) AnimalCosts(animalID string) float64 {
	return AnimalCostTotal(s.store.Snapshot(), animalID)
}

// Investment returns the cost total linked to a batch.
func (s *Service) Investment(batchID string) float64 {
	return BatchInvestment(s.store.Snapshot(), batchID)
}

// SaleProfit computes profit and ROI for the given animal.
func (s *Service) SaleProfit(animalID string) (SaleProfit, error) {
	doc := s.store.Snapshot()
	animal := doc.Animal(animalID)
	if animal == nil {
		return SaleProfit{}, fmt.Errorf("animal %s not found", animalID)
	}
	return ComputeSaleProfit(doc, *animal), nil
}

// FeedProjection estimates feed consumption for a batch and feed item.
func (s *Service) FeedProjection(batchID, itemID string, overrideIntake *float64) (FeedProjection, error) {
	doc := s.store.Snapshot()
	if doc.Batch(batchID) == nil {
		return FeedProjection{}, fmt.Errorf("batch %s not found", batchID)
	}
	item := doc.InventoryItem(itemID)
	if item == nil {
		return FeedProjection{}, fmt.Errorf("inventory item %s not found", itemID)
	}
	return ComputeFeedProjection(doc, batchID, *item, overrideIntake, s.now()), nil
}

// PeriodReport builds the profit and loss statement for a date range.
func (s *Service) PeriodReport(start, end time.Time) PeriodReport {
	return ComputePeriodReport(s.store.Snapshot(), start, end)
}

// Summary renders the advisory context digest for the current document.
func (s *Service) Summary() string {
	return BuildSummary(s.store.Snapshot())
}

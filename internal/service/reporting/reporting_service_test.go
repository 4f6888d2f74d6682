package reporting

import (
	"math"
	"strings"
	"testing"
	"time"

	"github.com/mamadbah2/rancher/internal/domain/models"
)

func approx(got, want float64) bool {
	return math.Abs(got-want) < 1e-9
}

func testDocument() models.Document {
	return models.Document{
		Animals: []models.Animal{
			{ID: "a1", Category: models.CategoryFattening, BatchID: "b1", PurchasePrice: 2500, Status: models.StatusSold, SalePrice: 3500, SaleDate: "2024-06-10"},
			{ID: "a2", Category: models.CategoryCalf, BatchID: "b1", Status: models.StatusActive},
			{ID: "a3", Category: models.CategoryFattening, BatchID: "b1", Status: models.StatusActive},
			{ID: "a4", Category: models.CategoryFattening, BatchID: "b2", Status: models.StatusSold, SalePrice: 2000, SaleDate: "2023-12-01"},
		},
		Batches: []models.Batch{{ID: "b1"}, {ID: "b2"}},
		Costs: []models.CostEntry{
			{ID: "c1", Type: models.CostInput, Amount: 200, Date: "2024-06-01", AnimalID: "a1"},
			{ID: "c2", Type: models.CostMedicine, Amount: 100, Date: "2024-06-02", AnimalID: "a1"},
			{ID: "c3", Type: models.CostFixed, Amount: 300, Date: "2024-06-03"},
			{ID: "c4", Type: models.CostInput, Amount: 150, Date: "2023-01-01", BatchID: "b1"},
		},
	}
}

func TestDashboard(t *testing.T) {
	stats := Dashboard(testDocument())

	if stats.ActiveAnimals != 2 {
		t.Errorf("active animals = %d, want 2", stats.ActiveAnimals)
	}
	if !approx(stats.TotalCost, 750) {
		t.Errorf("total cost = %v, want 750", stats.TotalCost)
	}
	if !approx(stats.AvgCostPerAnimal, 375) {
		t.Errorf("avg cost per animal = %v, want 375", stats.AvgCostPerAnimal)
	}

	// Input 350, Fixed 300, Medicine 100; Labor omitted at zero.
	want := []CostBucket{
		{Type: models.CostInput, Amount: 350},
		{Type: models.CostFixed, Amount: 300},
		{Type: models.CostMedicine, Amount: 100},
	}
	if len(stats.CostBreakdown) != len(want) {
		t.Fatalf("breakdown buckets = %d, want %d", len(stats.CostBreakdown), len(want))
	}
	for i, bucket := range stats.CostBreakdown {
		if bucket != want[i] {
			t.Errorf("breakdown[%d] = %+v, want %+v", i, bucket, want[i])
		}
	}
}

func TestDashboardAvgZeroWithoutActiveAnimals(t *testing.T) {
	doc := testDocument()
	for i := range doc.Animals {
		doc.Animals[i].Status = models.StatusSold
	}

	stats := Dashboard(doc)
	if stats.AvgCostPerAnimal != 0 {
		t.Errorf("avg cost = %v, want 0 with no active animals", stats.AvgCostPerAnimal)
	}
	if !approx(stats.TotalCost, 750) {
		t.Errorf("total cost = %v, want 750 regardless of statuses", stats.TotalCost)
	}
}

func TestAnimalCostTotal(t *testing.T) {
	doc := testDocument()
	if got := AnimalCostTotal(doc, "a1"); !approx(got, 300) {
		t.Errorf("AnimalCostTotal(a1) = %v, want 300", got)
	}
	if got := AnimalCostTotal(doc, "nope"); got != 0 {
		t.Errorf("AnimalCostTotal(unknown) = %v, want 0", got)
	}
}

func TestBatchInvestment(t *testing.T) {
	doc := testDocument()
	if got := BatchInvestment(doc, "b1"); !approx(got, 150) {
		t.Errorf("BatchInvestment(b1) = %v, want 150", got)
	}
}

func TestComputeSaleProfit(t *testing.T) {
	doc := testDocument()

	profit := ComputeSaleProfit(doc, *doc.Animal("a1"))
	if !approx(profit.Profit, 700) {
		t.Errorf("profit = %v, want 700", profit.Profit)
	}
	if !approx(profit.TotalInvested, 2800) {
		t.Errorf("invested = %v, want 2800", profit.TotalInvested)
	}
	if math.Abs(profit.ROI-25) > 0.001 {
		t.Errorf("roi = %v, want 25", profit.ROI)
	}
}

func TestComputeSaleProfitZeroInvestment(t *testing.T) {
	doc := models.Document{Animals: []models.Animal{{ID: "a1", SalePrice: 500, Status: models.StatusSold}}}

	profit := ComputeSaleProfit(doc, doc.Animals[0])
	if profit.ROI != 0 {
		t.Errorf("roi = %v, want 0 when nothing was invested", profit.ROI)
	}
	if !approx(profit.Profit, 500) {
		t.Errorf("profit = %v, want 500", profit.Profit)
	}
}

func TestComputeFeedProjection(t *testing.T) {
	doc := testDocument()
	item := models.InventoryItem{ID: "i1", Kind: models.ItemFeed, Quantity: 100, Unit: models.UnitKilogram, UnitCost: 2.5, DailyIntakeCalf: 2, DailyIntakeAdult: 8}
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)

	proj := ComputeFeedProjection(doc, "b1", item, nil, now)

	// One active calf at 2kg, one active adult at 8kg.
	if proj.CalfCount != 1 || proj.AdultCount != 1 {
		t.Errorf("head counts = %d/%d, want 1/1", proj.CalfCount, proj.AdultCount)
	}
	if !approx(proj.DailyTotal, 10) {
		t.Errorf("daily total = %v, want 10", proj.DailyTotal)
	}
	if !approx(proj.MonthlyTotal, 304.4) {
		t.Errorf("monthly total = %v, want 304.4", proj.MonthlyTotal)
	}
	if !approx(proj.DailyCost, 25) {
		t.Errorf("daily cost = %v, want 25", proj.DailyCost)
	}
	if !approx(proj.DaysOfStockLeft, 10) {
		t.Errorf("days of stock = %v, want 10", proj.DaysOfStockLeft)
	}
	if proj.DepletionDate != "2024-06-25" {
		t.Errorf("depletion date = %q, want 2024-06-25", proj.DepletionDate)
	}
}

func TestComputeFeedProjectionOverrideAndZeroIntake(t *testing.T) {
	doc := testDocument()
	item := models.InventoryItem{ID: "i1", Kind: models.ItemFeed, Quantity: 100, UnitCost: 1, DailyIntakeCalf: 2, DailyIntakeAdult: 8}
	now := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	override := 4.0
	proj := ComputeFeedProjection(doc, "b1", item, &override, now)
	if !approx(proj.DailyTotal, 8) {
		t.Errorf("daily total with override = %v, want 8", proj.DailyTotal)
	}
	if proj.IntakeCalf != 4 || proj.IntakeAdult != 4 {
		t.Errorf("override must replace both rates, got %v/%v", proj.IntakeCalf, proj.IntakeAdult)
	}

	zero := 0.0
	proj = ComputeFeedProjection(doc, "b1", item, &zero, now)
	if proj.DailyTotal != 0 || proj.DaysOfStockLeft != 0 || proj.DepletionDate != "" {
		t.Errorf("zero intake projection = %+v, want zero-valued runway", proj)
	}
}

func TestComputePeriodReport(t *testing.T) {
	doc := testDocument()
	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)

	report := ComputePeriodReport(doc, start, end)

	// c1+c2 are direct, c3 is fixed; c4 and the 2023 sale fall outside.
	if !approx(report.DirectCosts, 300) {
		t.Errorf("direct costs = %v, want 300", report.DirectCosts)
	}
	if !approx(report.FixedCosts, 300) {
		t.Errorf("fixed costs = %v, want 300", report.FixedCosts)
	}
	if !approx(report.TotalRevenue, 3500) {
		t.Errorf("revenue = %v, want 3500", report.TotalRevenue)
	}
	if report.SoldInPeriod != 1 {
		t.Errorf("sold in period = %d, want 1", report.SoldInPeriod)
	}
	if !approx(report.NetResult, 3500-600) {
		t.Errorf("net result = %v, want 2900", report.NetResult)
	}
	if report.ActiveAnimals != 2 {
		t.Errorf("active animals = %d, want 2", report.ActiveAnimals)
	}
	if !approx(report.AvgCostPerHead, 300) {
		t.Errorf("avg cost per head = %v, want 300", report.AvgCostPerHead)
	}

	for _, share := range report.CostsByType {
		switch share.Type {
		case models.CostInput:
			if !approx(share.Amount, 200) || math.Abs(share.Percentage-100.0/3) > 0.001 {
				t.Errorf("input share = %+v", share)
			}
		case models.CostLabor:
			if share.Amount != 0 || share.Percentage != 0 {
				t.Errorf("labor share = %+v, want zeros", share)
			}
		}
	}
}

func TestComputePeriodReportEndIsInclusive(t *testing.T) {
	doc := models.Document{
		Animals: []models.Animal{
			{ID: "a1", Status: models.StatusSold, SalePrice: 1000, SaleDate: "2024-06-30"},
		},
		Costs: []models.CostEntry{
			{ID: "c1", Type: models.CostFixed, Amount: 50, Date: "2024-06-30"},
			{ID: "c2", Type: models.CostFixed, Amount: 70, Date: "2024-07-01"},
		},
	}

	start := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 30, 0, 0, 0, 0, time.UTC)
	report := ComputePeriodReport(doc, start, end)

	if !approx(report.FixedCosts, 50) {
		t.Errorf("fixed costs = %v, want 50 (end-of-day inclusive, next day excluded)", report.FixedCosts)
	}
	if !approx(report.TotalRevenue, 1000) {
		t.Errorf("revenue = %v, want 1000 (sale on end date included)", report.TotalRevenue)
	}
}

func TestBuildSummary(t *testing.T) {
	summary := BuildSummary(testDocument())

	if summary == "" {
		t.Fatal("summary must not be empty")
	}
	for _, want := range []string{"Animais ativos: 2", "R$ 750.00", "Animais vendidos: 2"} {
		if !strings.Contains(summary, want) {
			t.Errorf("summary missing %q:\n%s", want, summary)
		}
	}
}

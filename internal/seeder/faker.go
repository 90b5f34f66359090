package seeder

import (
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/Lumos-Labs-HQ/whseed/internal/types"
	"github.com/shopspring/decimal"
)

// Source is the randomness the generator draws from. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
	Float64() float64
}

// NewSource returns a seeded source. A zero seed picks one from the clock.
func NewSource(seed int64) (Source, int64) {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return rand.New(rand.NewSource(seed)), seed
}

var (
	firstNames = []string{
		"James", "Mary", "John", "Patricia", "Robert", "Jennifer", "Michael", "Linda",
		"William", "Elizabeth", "David", "Barbara", "Richard", "Susan", "Joseph", "Jessica",
		"Thomas", "Sarah", "Charles", "Karen", "Jane", "Alice", "Bob", "Diana", "Grace", "Henry",
	}
	lastNames = []string{
		"Smith", "Johnson", "Williams", "Brown", "Jones", "Garcia", "Miller", "Davis",
		"Rodriguez", "Martinez", "Hernandez", "Lopez", "Gonzalez", "Wilson", "Anderson",
		"Thomas", "Taylor", "Moore", "Jackson", "Martin", "Lee", "Doe", "Clark", "Lewis",
	}
	freeEmailDomains = []string{"gmail.com", "yahoo.com", "hotmail.com", "outlook.com", "proton.me", "icloud.com"}

	locations = []location{
		{"United States", "NY", "New York"},
		{"United States", "CA", "Los Angeles"},
		{"United States", "IL", "Chicago"},
		{"United States", "TX", "Houston"},
		{"United States", "WA", "Seattle"},
		{"Canada", "ON", "Toronto"},
		{"Canada", "BC", "Vancouver"},
		{"United Kingdom", "ENG", "London"},
		{"United Kingdom", "SCT", "Edinburgh"},
		{"Germany", "BE", "Berlin"},
		{"Germany", "BY", "Munich"},
		{"Australia", "NSW", "Sydney"},
		{"Australia", "VIC", "Melbourne"},
		{"Netherlands", "NH", "Amsterdam"},
	}

	segments = []string{"Retail", "VIP", "Wholesale", "Employee"}

	brands = []string{"Acme", "Globex", "Initech", "Umbrella", "Stark", "Wayne Enterprises", "Wonka"}

	// taxonomy order is fixed so SKUs are assigned deterministically.
	taxonomy = []category{
		{"Electronics", []string{"Phones", "Laptops", "Headphones", "Accessories"}},
		{"Home", []string{"Furniture", "Kitchen", "Decor"}},
		{"Fashion", []string{"Men", "Women", "Shoes", "Accessories"}},
		{"Sports", []string{"Outdoor", "Gym", "Team Sports"}},
		{"Toys", []string{"Board Games", "Educational", "Collectibles"}},
	}

	statusWeights = []weighted{
		{types.StatusCompleted, 95},
		{types.StatusCancelled, 3},
		{types.StatusRefunded, 2},
	}

	shippingOptions = []decimal.Decimal{
		decimal.Zero,
		decimal.Zero,
		decimal.RequireFromString("4.99"),
		decimal.RequireFromString("9.99"),
	}
)

type location struct {
	Country string
	Region  string
	City    string
}

type category struct {
	Name          string
	Subcategories []string
}

type weighted struct {
	Value  string
	Weight int
}

// taxonomySlots is the number of (category, subcategory) pairs.
func taxonomySlots() int {
	n := 0
	for _, c := range taxonomy {
		n += len(c.Subcategories)
	}
	return n
}

type DataGenerator struct {
	rand Source
	now  func() time.Time
}

func NewDataGenerator(src Source) *DataGenerator {
	return &DataGenerator{
		rand: src,
		now:  time.Now,
	}
}

func (g *DataGenerator) pick(values []string) string {
	return values[g.rand.Intn(len(values))]
}

// uniform draws from [lo, hi).
func (g *DataGenerator) uniform(lo, hi float64) float64 {
	return lo + (hi-lo)*g.rand.Float64()
}

func (g *DataGenerator) weightedChoice(options []weighted) string {
	total := 0
	for _, o := range options {
		total += o.Weight
	}
	r := g.rand.Intn(total)
	for _, o := range options {
		if r < o.Weight {
			return o.Value
		}
		r -= o.Weight
	}
	return options[len(options)-1].Value
}

// Customer builds the customer with sequence number seq. Name and email
// domain are drawn first so the email is always derived from the name.
func (g *DataGenerator) Customer(seq int) types.Customer {
	first := g.pick(firstNames)
	last := g.pick(lastNames)
	domain := g.pick(freeEmailDomains)
	loc := locations[g.rand.Intn(len(locations))]

	return types.Customer{
		Key:         fmt.Sprintf("CUST-%05d", seq),
		FirstName:   first,
		LastName:    last,
		Email:       emailFor(first, last, domain),
		Phone:       g.generatePhone(),
		CreatedDate: g.createdDate(),
		Country:     loc.Country,
		Region:      loc.Region,
		City:        loc.City,
		PostalCode:  fmt.Sprintf("%05d", g.rand.Intn(100000)),
		Segment:     g.pick(segments),
	}
}

func emailFor(first, last, domain string) string {
	return fmt.Sprintf("%s.%s@%s", strings.ToLower(first), strings.ToLower(last), domain)
}

func (g *DataGenerator) generatePhone() string {
	return fmt.Sprintf("+1-%03d-%03d-%04d", g.rand.Intn(800)+200, g.rand.Intn(1000), g.rand.Intn(10000))
}

// createdDate is uniform over the last four years through today.
func (g *DataGenerator) createdDate() time.Time {
	y, m, d := g.now().Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	start := today.AddDate(-4, 0, 0)
	days := int(today.Sub(start).Hours() / 24)
	return start.AddDate(0, 0, g.rand.Intn(days+1))
}

// Product builds the product with sequence number seq in the given slot.
func (g *DataGenerator) Product(seq int, categoryName, subcategory string) types.Product {
	brand := g.pick(brands)
	listPrice := roundMoney(g.uniform(10, 500))
	cost := mulRound(listPrice, g.uniform(0.4, 0.8))

	return types.Product{
		SKU:         fmt.Sprintf("SKU-%05d", seq),
		Name:        fmt.Sprintf("%s %s %d", brand, subcategory, seq),
		Brand:       brand,
		Category:    categoryName,
		Subcategory: subcategory,
		ListPrice:   listPrice,
		Cost:        cost,
		IsActive:    g.rand.Float64() > 0.05,
	}
}

func (g *DataGenerator) OrderStatus() string {
	return g.weightedChoice(statusWeights)
}

func (g *DataGenerator) Shipping() decimal.Decimal {
	return shippingOptions[g.rand.Intn(len(shippingOptions))]
}

// LineItem prices one line for the product. unit_price drifts from the
// list price by a factor in [0.7, 1.1); 30% of lines carry a 5-30% markdown.
func (g *DataGenerator) LineItem(orderID int64, product types.ProductPrice) types.OrderItem {
	quantity := g.rand.Intn(4) + 1
	unitPrice := mulRound(product.ListPrice, g.uniform(0.7, 1.1))

	unitDiscount := decimal.Zero
	if g.rand.Float64() < 0.3 {
		unitDiscount = mulRound(unitPrice, g.uniform(0.05, 0.30))
	}

	return NewLineItem(orderID, product.ID, quantity, unitPrice, unitDiscount)
}

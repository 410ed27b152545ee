package engine

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// CustomCategoryInput describes a user-authored flavor.
type CustomCategoryInput struct {
	Name  string `validate:"required,max=40"`
	Color string `validate:"omitempty,max=120"`
	Price int    `validate:"gt=0"`
}

// CustomShopItemInput describes a user-authored reward.
type CustomShopItemInput struct {
	Name        string `validate:"required,max=40"`
	Description string `validate:"max=200"`
	Price       int    `validate:"gt=0"`
	Image       string `validate:"max=16"`
}

const (
	defaultCustomColor = "#FEF7CD"
	defaultCustomImage = "🎁"
)

// validateInput runs struct validation and maps the first failure to a
// ValidationError.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	fe := fieldErrs[0]
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return ValidationError{Field: field, Reason: "is required"}
	case "gt":
		return ValidationError{Field: field, Reason: "must be positive"}
	case "max":
		return ValidationError{Field: field, Reason: fmt.Sprintf("must be at most %s characters", fe.Param())}
	case "oneof":
		return ValidationError{Field: field, Reason: "must be one of " + strings.ReplaceAll(fe.Param(), " ", ", ")}
	default:
		return ValidationError{Field: field, Reason: "is invalid"}
	}
}

// addCapped adds two non-negative ints, stopping at math.MaxInt.
func addCapped(a, b int) int {
	if b > math.MaxInt-a {
		return math.MaxInt
	}
	return a + b
}

func fits(balance, amount int) bool {
	return amount <= math.MaxInt-balance
}

var errBalanceOverflow = ValidationError{Field: "amount", Reason: "would overflow the balance"}

func (e *Engine) creditCoins(amount int) {
	if amount <= 0 {
		return
	}
	e.coins = addCapped(e.coins, amount)
	e.fx.Coins = addCapped(e.fx.Coins, amount)
	e.markDirty(KeyCoins)
}

func (e *Engine) creditBerries(amount int) {
	if amount <= 0 {
		return
	}
	e.berries = addCapped(e.berries, amount)
	e.fx.Berries = addCapped(e.fx.Berries, amount)
	e.markDirty(KeyBerries)
}

func (e *Engine) ownedCategories() int {
	n := 0
	for _, c := range e.categories {
		if c.Owned {
			n++
		}
	}
	return n
}

func (e *Engine) categoryIndex(id string) int {
	for i := range e.categories {
		if e.categories[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) shopItemIndex(id string) int {
	for i := range e.shopItems {
		if e.shopItems[i].ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) AddCoins(ctx context.Context, amount int) error {
	if amount < 0 {
		return ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if !fits(e.coins, amount) {
		return errBalanceOverflow
	}

	e.begin()
	e.creditCoins(amount)
	_, err := e.commit(ctx)
	return err
}

func (e *Engine) AddBerries(ctx context.Context, amount int) error {
	if amount < 0 {
		return ValidationError{Field: "amount", Reason: "must not be negative"}
	}
	e.mu.Lock()
	defer e.mu.Unlock()

	if !fits(e.berries, amount) {
		return errBalanceOverflow
	}

	e.begin()
	e.creditBerries(amount)
	_, err := e.commit(ctx)
	return err
}

// PurchaseCategory buys a flavor with berries. It returns false without
// touching state when the flavor is unknown, already owned or unaffordable.
func (e *Engine) PurchaseCategory(ctx context.Context, id string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.categoryIndex(id)
	if i < 0 {
		return false, nil
	}
	c := &e.categories[i]
	if c.Owned || c.Price > e.berries {
		return false, nil
	}

	e.begin()
	e.berries -= c.Price
	c.Owned = true
	e.markDirty(KeyBerries, KeyCategories)
	e.trackAchievementCount(AchievementCollector, e.ownedCategories())
	e.log.Debugf("bought flavor %s for %d berries", id, c.Price)

	_, err := e.commit(ctx)
	return true, err
}

// AddCustomCategory defines a new flavor. Self-authored flavors are owned
// from the start whatever their price, and count toward the collector
// achievement like a purchase.
func (e *Engine) AddCustomCategory(ctx context.Context, in CustomCategoryInput) (*Category, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Color = strings.TrimSpace(in.Color)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.Color == "" {
		in.Color = defaultCustomColor
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.begin()
	c := Category{
		ID:       e.newID(func(id string) bool { return e.categoryIndex(id) >= 0 }),
		Name:     in.Name,
		Color:    in.Color,
		Price:    in.Price,
		Owned:    true,
		IsCustom: true,
	}
	e.categories = append(e.categories, c)
	e.markDirty(KeyCategories)
	e.trackAchievementCount(AchievementCollector, e.ownedCategories())

	if _, err := e.commit(ctx); err != nil {
		return nil, err
	}
	return &c, nil
}

// PurchaseShopItem spends coins on a reward. Rewards can be bought any number
// of times.
func (e *Engine) PurchaseShopItem(ctx context.Context, id string) (bool, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	i := e.shopItemIndex(id)
	if i < 0 || e.shopItems[i].Price > e.coins {
		return false, nil
	}

	e.begin()
	e.coins -= e.shopItems[i].Price
	e.markDirty(KeyCoins)
	e.log.Debugf("bought reward %s for %d coins", id, e.shopItems[i].Price)

	_, err := e.commit(ctx)
	return true, err
}

func (e *Engine) AddCustomShopItem(ctx context.Context, in CustomShopItemInput) (*ShopItem, error) {
	in.Name = strings.TrimSpace(in.Name)
	in.Description = strings.TrimSpace(in.Description)
	in.Image = strings.TrimSpace(in.Image)
	if err := validateInput(in); err != nil {
		return nil, err
	}
	if in.Image == "" {
		in.Image = defaultCustomImage
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.begin()
	item := ShopItem{
		ID:          e.newID(func(id string) bool { return e.shopItemIndex(id) >= 0 }),
		Name:        in.Name,
		Description: in.Description,
		Price:       in.Price,
		Image:       in.Image,
		IsCustom:    true,
	}
	e.shopItems = append(e.shopItems, item)
	e.markDirty(KeyShopItems)

	if _, err := e.commit(ctx); err != nil {
		return nil, err
	}
	return &item, nil
}

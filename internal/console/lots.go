package console

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/AbdulKus/jshop-admin/internal/domain"
	"github.com/AbdulKus/jshop-admin/internal/forms"
)

// LotTrigger says what asked for a lot list reload.
type LotTrigger string

const (
	TriggerRefresh LotTrigger = "refresh"
	TriggerSearch  LotTrigger = "search"
	TriggerFilter  LotTrigger = "filter"
)

var lotTriggerPrefix = map[LotTrigger]string{
	TriggerRefresh: "Ошибка загрузки лотов",
	TriggerSearch:  "Ошибка поиска",
	TriggerFilter:  "Ошибка фильтрации",
}

// ParseLotTrigger maps a form action to a trigger; unknown values mean refresh.
func ParseLotTrigger(action string) LotTrigger {
	switch LotTrigger(action) {
	case TriggerSearch, TriggerFilter:
		return LotTrigger(action)
	default:
		return TriggerRefresh
	}
}

// FilterLots stores filter and reloads the lot list with it.
func (c *Console) FilterLots(ctx context.Context, filter domain.LotFilter, trigger LotTrigger) error {
	if filter.Category == "" {
		filter.Category = domain.CategoryAll
	}
	c.mu.Lock()
	c.state.Filter = filter
	c.mu.Unlock()

	if err := c.refreshLots(ctx); err != nil {
		prefix, ok := lotTriggerPrefix[trigger]
		if !ok {
			prefix = lotTriggerPrefix[TriggerRefresh]
		}
		c.fail(prefix, err)
		return err
	}
	return nil
}

// SaveLot creates a lot, or updates the one being edited.
func (c *Console) SaveLot(ctx context.Context, form forms.LotForm) error {
	c.mu.Lock()
	editing := c.state.EditingLotSlug
	c.state.LotForm = form
	c.mu.Unlock()

	payload := form.Payload()
	var err error
	if editing != "" {
		err = c.client.UpdateLot(ctx, editing, payload)
	} else {
		err = c.client.CreateLot(ctx, payload)
	}
	if err == nil {
		err = c.parallel(ctx, c.refreshLots, c.refreshDashboard)
	}
	if err != nil {
		c.fail("Ошибка сохранения лота", err)
		return err
	}

	c.ResetLotForm()
	c.succeed("Лот сохранен")
	return nil
}

// EditLot opens the lot form on slug. It reports false when the slug is not
// in the current list.
func (c *Console) EditLot(slug string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, lot := range c.state.Lots {
		if lot.Slug == slug {
			c.state.EditingLotSlug = lot.Slug
			c.state.LotForm = forms.LotFormFrom(lot)
			return true
		}
	}
	return false
}

func (c *Console) ResetLotForm() {
	c.mu.Lock()
	c.state.EditingLotSlug = ""
	c.state.LotForm = forms.NewLotForm()
	c.mu.Unlock()
}

func (c *Console) DeleteLot(ctx context.Context, slug string) error {
	err := c.client.DeleteLot(ctx, slug)
	if err == nil {
		err = c.parallel(ctx, c.refreshLots, c.refreshDashboard)
	}
	if err != nil {
		c.fail("Ошибка удаления лота", err)
		return err
	}

	c.mu.Lock()
	if c.state.EditingLotSlug == slug {
		c.state.EditingLotSlug = ""
		c.state.LotForm = forms.NewLotForm()
	}
	c.mu.Unlock()

	c.succeed(fmt.Sprintf("Лот %s удален", slug))
	return nil
}

// DuplicateLot copies slug under newSlug. An empty newSlug is a cancelled prompt.
func (c *Console) DuplicateLot(ctx context.Context, slug, newSlug string) error {
	if newSlug == "" {
		return nil
	}
	newSlug = strings.TrimSpace(newSlug)

	err := c.client.DuplicateLot(ctx, slug, newSlug)
	if err == nil {
		err = c.parallel(ctx, c.refreshLots, c.refreshDashboard)
	}
	if err != nil {
		c.fail("Ошибка дублирования лота", err)
		return err
	}

	c.succeed(fmt.Sprintf("Лот %s продублирован как %s", slug, newSlug))
	return nil
}

// BulkCreateLots validates raw locally and submits its lots in one request.
// raw is either a JSON list of lots or an object with an "items" list.
func (c *Console) BulkCreateLots(ctx context.Context, raw string) (*domain.BulkResult, error) {
	c.mu.Lock()
	c.state.BulkJSON = raw
	c.mu.Unlock()

	items, err := parseBulkItems(raw)
	if err != nil {
		var syntaxErr *bulkSyntaxError
		switch {
		case errors.Is(err, ErrEmptyBulk):
			c.setStatus("Заполните JSON для массового создания", StatusError)
		case errors.As(err, &syntaxErr):
			c.setStatus("Невалидный JSON: "+syntaxErr.cause.Error(), StatusError)
		default:
			c.setStatus("JSON должен содержать массив лотов", StatusError)
		}
		c.log.Warnf("Rejected bulk upload: %v", err)
		return nil, err
	}

	result, err := c.client.BulkCreateLots(ctx, items)
	if err == nil {
		err = c.parallel(ctx, c.refreshLots, c.refreshDashboard)
	}
	if err != nil {
		c.fail("Ошибка bulk-создания", err)
		return nil, err
	}

	created, failed := result.CreatedCount(), result.ErrorCount()
	kind := StatusOK
	if failed > 0 {
		kind = StatusError
	}
	message := fmt.Sprintf("Bulk: создано %d, ошибок %d", created, failed)
	c.log.WithField("created", created).WithField("errors", failed).Info("Bulk upload finished")
	c.setStatus(message, kind)
	return result, nil
}

type bulkSyntaxError struct {
	cause error
}

func (e *bulkSyntaxError) Error() string {
	return ErrInvalidBulkJSON.Error() + ": " + e.cause.Error()
}

func (e *bulkSyntaxError) Is(target error) bool { return target == ErrInvalidBulkJSON }

func parseBulkItems(raw string) ([]any, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrEmptyBulk
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(raw)))
	dec.UseNumber()
	var parsed any
	if err := dec.Decode(&parsed); err != nil {
		return nil, &bulkSyntaxError{cause: err}
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, &bulkSyntaxError{cause: errors.New("unexpected data after top-level value")}
	}

	var items []any
	switch v := parsed.(type) {
	case []any:
		items = v
	case map[string]any:
		items, _ = v["items"].([]any)
	}
	if len(items) == 0 {
		return nil, ErrNoBulkItems
	}
	return items, nil
}

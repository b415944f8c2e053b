package console

import (
	"context"
	"fmt"

	"github.com/AbdulKus/jshop-admin/internal/forms"
)

// SaveCategory creates a category, or updates label and sort order of the
// one being edited. Codes are immutable once created.
func (c *Console) SaveCategory(ctx context.Context, form forms.CategoryForm) error {
	c.mu.Lock()
	editing := c.state.EditingCategoryCode
	if editing != "" {
		form.Code = editing
	}
	c.state.CategoryForm = form
	c.mu.Unlock()

	var err error
	if editing != "" {
		err = c.client.UpdateCategory(ctx, editing, form.UpdatePayload())
	} else {
		err = c.client.CreateCategory(ctx, form.CreatePayload())
	}
	if err == nil {
		err = c.parallel(ctx, c.refreshCategories, c.refreshDashboard, c.refreshLots)
	}
	if err != nil {
		c.fail("Ошибка сохранения категории", err)
		return err
	}

	c.ResetCategoryForm()
	c.succeed("Категория сохранена")
	return nil
}

func (c *Console) EditCategory(code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, category := range c.state.Categories {
		if category.Code == code {
			c.state.EditingCategoryCode = category.Code
			c.state.CategoryForm = forms.CategoryFormFrom(category)
			return true
		}
	}
	return false
}

func (c *Console) ResetCategoryForm() {
	c.mu.Lock()
	c.state.EditingCategoryCode = ""
	c.state.CategoryForm = forms.NewCategoryForm()
	c.mu.Unlock()
}

func (c *Console) DeleteCategory(ctx context.Context, code string) error {
	err := c.client.DeleteCategory(ctx, code)
	if err == nil {
		err = c.parallel(ctx, c.refreshCategories, c.refreshDashboard, c.refreshLots)
	}
	if err != nil {
		c.fail("Ошибка удаления категории", err)
		return err
	}

	c.mu.Lock()
	if c.state.EditingCategoryCode == code {
		c.state.EditingCategoryCode = ""
		c.state.CategoryForm = forms.NewCategoryForm()
	}
	c.mu.Unlock()

	c.succeed(fmt.Sprintf("Категория %s удалена", code))
	return nil
}

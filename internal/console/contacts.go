package console

import (
	"context"
	"fmt"

	"github.com/AbdulKus/jshop-admin/internal/forms"
)

func (c *Console) SaveContact(ctx context.Context, form forms.ContactForm) error {
	c.mu.Lock()
	editing := c.state.EditingContactCode
	if editing != "" {
		form.Code = editing
	}
	c.state.ContactForm = form
	c.mu.Unlock()

	payload := form.Payload()
	var err error
	if editing != "" {
		err = c.client.UpdateContact(ctx, editing, payload)
	} else {
		err = c.client.CreateContact(ctx, payload)
	}
	if err == nil {
		err = c.parallel(ctx, c.refreshContacts, c.refreshDashboard)
	}
	if err != nil {
		c.fail("Ошибка сохранения контакта", err)
		return err
	}

	c.ResetContactForm()
	c.succeed("Контакт сохранен")
	return nil
}

func (c *Console) EditContact(code string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, contact := range c.state.Contacts {
		if contact.Code == code {
			c.state.EditingContactCode = contact.Code
			c.state.ContactForm = forms.ContactFormFrom(contact)
			return true
		}
	}
	return false
}

func (c *Console) ResetContactForm() {
	c.mu.Lock()
	c.state.EditingContactCode = ""
	c.state.ContactForm = forms.NewContactForm()
	c.mu.Unlock()
}

func (c *Console) DeleteContact(ctx context.Context, code string) error {
	err := c.client.DeleteContact(ctx, code)
	if err == nil {
		err = c.parallel(ctx, c.refreshContacts, c.refreshDashboard)
	}
	if err != nil {
		c.fail("Ошибка удаления контакта", err)
		return err
	}

	c.mu.Lock()
	if c.state.EditingContactCode == code {
		c.state.EditingContactCode = ""
		c.state.ContactForm = forms.NewContactForm()
	}
	c.mu.Unlock()

	c.succeed(fmt.Sprintf("Контакт %s удален", code))
	return nil
}

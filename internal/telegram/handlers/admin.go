package handlers

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	tele "gopkg.in/telebot.v4"

	"github.com/tab1k/PandaShopBot/internal/logger"
	"github.com/tab1k/PandaShopBot/internal/media"
	"github.com/tab1k/PandaShopBot/internal/metrics"
	"github.com/tab1k/PandaShopBot/internal/storage"
	"github.com/tab1k/PandaShopBot/internal/telegram/helpers"
	"github.com/tab1k/PandaShopBot/internal/telegram/keyboard"
	"github.com/tab1k/PandaShopBot/internal/telegram/wizard"
)

// AddCategory starts the add-category wizard.
func (h *Handlers) AddCategory(c tele.Context) error {
	h.beginWizard(c.Chat().ID, wizard.Step{Name: wizard.StepCategoryName})
	return c.Send(msgAskCategoryName)
}

func (h *Handlers) stepCategoryName(c tele.Context) error {
	ctx := helpers.WithHandler(c, "add_category")
	chatID := c.Chat().ID

	name := strings.TrimSpace(c.Text())
	if name == "" {
		h.steps.Set(chatID, wizard.Step{Name: wizard.StepCategoryName})
		return c.Send(msgCategoryNameEmpty)
	}

	h.steps.Clear(chatID)
	cat, err := h.catalog.InsertCategory(ctx, name)
	if err != nil {
		if err == storage.ErrDuplicateCategory {
			return c.Send(fmt.Sprintf("Категория '%s' уже существует.", name))
		}
		logger.Error(ctx, "tg", "admin.category.insert_failed", slog.String("err", err.Error()))
		return c.Send(msgGenericError)
	}
	metrics.CategoriesCreated.Inc()
	return c.Send(fmt.Sprintf("Категория '%s' успешно добавлена.", cat.Name))
}

// AddProduct starts the five-step add-product wizard.
func (h *Handlers) AddProduct(c tele.Context) error {
	h.beginWizard(c.Chat().ID, wizard.Step{Name: wizard.StepProductName, Product: &wizard.ProductDraft{}})
	if err := c.Send(msgAdminPanel); err != nil {
		return err
	}
	return c.Send(msgAskProductName)
}

func (h *Handlers) stepProductName(c tele.Context, draft *wizard.ProductDraft) error {
	ctx := helpers.WithHandler(c, "add_product")
	chatID := c.Chat().ID

	name := strings.TrimSpace(c.Text())
	if name == "" {
		h.steps.Set(chatID, wizard.Step{Name: wizard.StepProductName, Product: draft})
		return c.Send(msgProductNameEmpty)
	}
	draft.Name = name

	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		logger.Error(ctx, "tg", "admin.product.categories_failed", slog.String("err", err.Error()))
		h.steps.Clear(chatID)
		return c.Send(msgGenericError)
	}
	if len(categories) == 0 {
		h.steps.Clear(chatID)
		return c.Send(msgNoCategories)
	}

	draft.Categories = make([]wizard.CategoryOption, len(categories))
	rows := make([][]string, len(categories))
	for i, cat := range categories {
		draft.Categories[i] = wizard.CategoryOption{ID: cat.ID, Name: cat.Name}
		rows[i] = []string{cat.Name}
	}

	h.steps.Set(chatID, wizard.Step{Name: wizard.StepProductCategory, Product: draft})
	return c.Send(msgChooseCategory, keyboard.ReplyButtons(rows...))
}

func (h *Handlers) stepProductCategory(c tele.Context, draft *wizard.ProductDraft) error {
	chatID := c.Chat().ID

	id, ok := wizard.MatchCategory(draft.Categories, c.Text())
	if !ok {
		h.steps.Set(chatID, wizard.Step{Name: wizard.StepProductCategory, Product: draft})
		return c.Send(msgBadCategoryChoice)
	}
	draft.CategoryID = id

	h.steps.Set(chatID, wizard.Step{Name: wizard.StepProductPrice, Product: draft})
	return c.Send(msgAskPrice)
}

func (h *Handlers) stepProductPrice(c tele.Context, draft *wizard.ProductDraft) error {
	chatID := c.Chat().ID

	price, err := wizard.ParsePrice(c.Text())
	if err != nil {
		h.steps.Set(chatID, wizard.Step{Name: wizard.StepProductPrice, Product: draft})
		return c.Send(msgBadPrice)
	}
	draft.Price = price

	h.steps.Set(chatID, wizard.Step{Name: wizard.StepProductSizes, Product: draft})
	return c.Send(msgAskSizes, keyboard.RemoveKeyboard())
}

func (h *Handlers) stepProductSizes(c tele.Context, draft *wizard.ProductDraft) error {
	draft.Sizes = wizard.SplitSizes(c.Text())
	h.steps.Set(c.Chat().ID, wizard.Step{Name: wizard.StepProductPhoto, Product: draft})
	return c.Send(msgAskPhoto)
}

// stepProductPhoto is the terminal add-product step: the row is inserted
// first so the photo file can be keyed by the new product id, then the photo
// column is filled in.
func (h *Handlers) stepProductPhoto(c tele.Context, draft *wizard.ProductDraft) error {
	ctx := helpers.WithHandler(c, "add_product_commit")
	chatID := c.Chat().ID

	photo := c.Message().Photo
	if photo == nil {
		h.steps.Set(chatID, wizard.Step{Name: wizard.StepProductPhoto, Product: draft})
		return c.Send(msgPhotoMissing)
	}

	h.steps.Clear(chatID)

	p, err := h.catalog.InsertProduct(ctx, storage.NewProduct{
		Name:       draft.Name,
		CategoryID: draft.CategoryID,
		Price:      draft.Price,
		Sizes:      storage.SizeList(draft.Sizes),
	})
	if err != nil {
		logger.Error(ctx, "tg", "admin.product.insert_failed", slog.String("err", err.Error()))
		return c.Send(msgProductInsertFailed)
	}
	metrics.ProductsCreated.Inc()

	if err := h.storePhoto(c, p.ID, &photo.File); err != nil {
		logger.Error(ctx, "tg", "admin.product.photo_failed",
			slog.Int64("product_id", p.ID),
			slog.String("err", err.Error()),
		)
		return c.Send(fmt.Sprintf("Товар '%s' добавлен, но фотографию сохранить не удалось.", p.Name))
	}
	return c.Send(fmt.Sprintf("Товар '%s' успешно добавлен.", p.Name))
}

// storePhoto downloads the uploaded photo, writes it under the media root and
// records the file name on the product row.
func (h *Handlers) storePhoto(c tele.Context, productID int64, file *tele.File) error {
	rc, err := h.files.File(file)
	if err != nil {
		return fmt.Errorf("download photo: %w", err)
	}
	defer func() { _ = rc.Close() }()

	name, err := h.media.Save(productID, rc)
	if err != nil {
		return err
	}

	ctx := helpers.BuildContext(c)
	if err := h.catalog.SetProductPhoto(ctx, productID, name); err != nil {
		_ = h.media.Remove(name)
		return err
	}
	return nil
}

// DeleteProduct starts the delete-product wizard.
func (h *Handlers) DeleteProduct(c tele.Context) error {
	h.beginWizard(c.Chat().ID, wizard.Step{Name: wizard.StepDeleteProduct})
	return c.Send(msgAskDeleteID)
}

func (h *Handlers) stepDeleteProduct(c tele.Context) error {
	ctx := helpers.WithHandler(c, "delete_product")
	chatID := c.Chat().ID

	id, err := strconv.ParseInt(strings.TrimSpace(c.Text()), 10, 64)
	if err != nil {
		h.steps.Set(chatID, wizard.Step{Name: wizard.StepDeleteProduct})
		return c.Send(msgBadDeleteID)
	}

	h.steps.Clear(chatID)

	// Fetched before the delete so the stored photo can be removed after.
	photoFile := ""
	if p, err := h.catalog.ProductByID(ctx, id); err == nil {
		photoFile = p.Photo
	}

	if err := h.catalog.DeleteProduct(ctx, id); err != nil {
		if err == storage.ErrNotFound {
			return c.Send(msgProductMissing)
		}
		logger.Error(ctx, "tg", "admin.product.delete_failed",
			slog.Int64("product_id", id),
			slog.String("err", err.Error()),
		)
		return c.Send(msgGenericError)
	}

	if photoFile == "" {
		photoFile = media.Filename(id)
	}
	if err := h.media.Remove(photoFile); err != nil {
		logger.Warn(ctx, "tg", "admin.product.photo_remove_failed",
			slog.Int64("product_id", id),
			slog.String("err", err.Error()),
		)
	}
	return c.Send(fmt.Sprintf("Продукт с ID %d успешно удален.", id))
}

package handlers

import (
	"context"
	"fmt"
	"io"
	"sort"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	tele "gopkg.in/telebot.v4"

	"github.com/tab1k/PandaShopBot/internal/storage"
	"github.com/tab1k/PandaShopBot/internal/telegram/wizard"
)

// fakeContext implements the slice of tele.Context the handlers touch and
// records every outbound send. The embedded interface panics on anything
// unexpected, which is exactly what a test wants.
type fakeContext struct {
	tele.Context

	chat   *tele.Chat
	sender *tele.User
	text   string
	msg    *tele.Message
	cb     *tele.Callback
	store  map[string]any

	sent    []any
	deleted int
}

func newFakeContext(chatID int64) *fakeContext {
	return &fakeContext{
		chat:   &tele.Chat{ID: chatID},
		sender: &tele.User{ID: chatID, Username: "tester"},
		msg:    &tele.Message{},
	}
}

func (f *fakeContext) Chat() *tele.Chat         { return f.chat }
func (f *fakeContext) Sender() *tele.User       { return f.sender }
func (f *fakeContext) Text() string             { return f.text }
func (f *fakeContext) Message() *tele.Message   { return f.msg }
func (f *fakeContext) Callback() *tele.Callback { return f.cb }
func (f *fakeContext) Update() tele.Update      { return tele.Update{} }
func (f *fakeContext) Delete() error            { f.deleted++; return nil }

func (f *fakeContext) Respond(_ ...*tele.CallbackResponse) error { return nil }

func (f *fakeContext) Send(what any, _ ...any) error {
	f.sent = append(f.sent, what)
	return nil
}

func (f *fakeContext) Get(key string) any { return f.store[key] }

func (f *fakeContext) Set(key string, val any) {
	if f.store == nil {
		f.store = make(map[string]any)
	}
	f.store[key] = val
}

// lastText returns the most recent plain-text send.
func (f *fakeContext) lastText(t *testing.T) string {
	t.Helper()
	for i := len(f.sent) - 1; i >= 0; i-- {
		if s, ok := f.sent[i].(string); ok {
			return s
		}
	}
	t.Fatal("no text was sent")
	return ""
}

// withText prepares the context for the next inbound text message.
func (f *fakeContext) withText(text string) *fakeContext {
	f.text = text
	f.msg = &tele.Message{Text: text}
	return f
}

// withPhoto prepares the context for the next inbound photo message.
func (f *fakeContext) withPhoto(fileID string) *fakeContext {
	f.text = ""
	f.msg = &tele.Message{Photo: &tele.Photo{File: tele.File{FileID: fileID}}}
	return f
}

// fakeDB backs every store interface with in-memory maps. Cart rows follow
// the same upsert and cascade rules the SQL layer implements.
type fakeDB struct {
	users      map[int64]storage.User
	categories []storage.Category
	products   map[int64]storage.Product
	carts      map[int64]map[int64]int
	orders     []fakeOrder

	nextCategoryID int64
	nextProductID  int64

	failOrderSave bool
}

type fakeOrder struct {
	userID  int64
	details storage.OrderDetails
}

func newFakeDB() *fakeDB {
	return &fakeDB{
		users:    make(map[int64]storage.User),
		products: make(map[int64]storage.Product),
		carts:    make(map[int64]map[int64]int),
	}
}

func (db *fakeDB) Register(_ context.Context, user storage.User) error {
	if _, ok := db.users[user.ChatID]; !ok {
		db.users[user.ChatID] = user
	}
	return nil
}

func (db *fakeDB) IsRegistered(_ context.Context, chatID int64) (bool, error) {
	_, ok := db.users[chatID]
	return ok, nil
}

func (db *fakeDB) ByChatID(_ context.Context, chatID int64) (storage.User, error) {
	u, ok := db.users[chatID]
	if !ok {
		return storage.User{}, storage.ErrNotFound
	}
	return u, nil
}

func (db *fakeDB) ListCategories(_ context.Context) ([]storage.Category, error) {
	return append([]storage.Category(nil), db.categories...), nil
}

func (db *fakeDB) InsertCategory(_ context.Context, name string) (storage.Category, error) {
	for _, c := range db.categories {
		if c.Name == name {
			return storage.Category{}, storage.ErrDuplicateCategory
		}
	}
	db.nextCategoryID++
	cat := storage.Category{ID: db.nextCategoryID, Name: name}
	db.categories = append(db.categories, cat)
	return cat, nil
}

func (db *fakeDB) ProductsByCategory(_ context.Context, categoryID int64) ([]storage.Product, error) {
	var out []storage.Product
	for _, p := range db.products {
		if p.CategoryID == categoryID {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (db *fakeDB) ProductByID(_ context.Context, id int64) (storage.Product, error) {
	p, ok := db.products[id]
	if !ok {
		return storage.Product{}, storage.ErrNotFound
	}
	return p, nil
}

func (db *fakeDB) InsertProduct(_ context.Context, np storage.NewProduct) (storage.Product, error) {
	db.nextProductID++
	p := storage.Product{
		ID:         db.nextProductID,
		Name:       np.Name,
		CategoryID: np.CategoryID,
		Price:      np.Price,
		Sizes:      np.Sizes,
		Photo:      np.Photo,
	}
	db.products[p.ID] = p
	return p, nil
}

func (db *fakeDB) SetProductPhoto(_ context.Context, id int64, filename string) error {
	p, ok := db.products[id]
	if !ok {
		return storage.ErrNotFound
	}
	p.Photo = filename
	db.products[id] = p
	return nil
}

func (db *fakeDB) DeleteProduct(_ context.Context, id int64) error {
	if _, ok := db.products[id]; !ok {
		return storage.ErrNotFound
	}
	for _, cart := range db.carts {
		delete(cart, id)
	}
	delete(db.products, id)
	return nil
}

func (db *fakeDB) Add(_ context.Context, userID, productID int64) error {
	cart := db.carts[userID]
	if cart == nil {
		cart = make(map[int64]int)
		db.carts[userID] = cart
	}
	cart[productID]++
	return nil
}

func (db *fakeDB) Items(_ context.Context, userID int64) ([]storage.CartItem, error) {
	cart := db.carts[userID]
	ids := make([]int64, 0, len(cart))
	for id := range cart {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := make([]storage.CartItem, 0, len(ids))
	for _, id := range ids {
		p := db.products[id]
		out = append(out, storage.CartItem{
			ProductID: id,
			Name:      p.Name,
			Price:     p.Price,
			Quantity:  cart[id],
		})
	}
	return out, nil
}

func (db *fakeDB) Clear(_ context.Context, userID int64) error {
	delete(db.carts, userID)
	return nil
}

func (db *fakeDB) Save(_ context.Context, userID int64, d storage.OrderDetails) (int64, error) {
	if db.failOrderSave {
		return 0, fmt.Errorf("save order: boom")
	}
	db.orders = append(db.orders, fakeOrder{userID: userID, details: d})
	return int64(len(db.orders)), nil
}

type fakeMedia struct {
	files map[string][]byte
}

func newFakeMedia() *fakeMedia { return &fakeMedia{files: make(map[string][]byte)} }

func (m *fakeMedia) Save(productID int64, r io.Reader) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	name := fmt.Sprintf("%d.jpg", productID)
	m.files[name] = data
	return name, nil
}

func (m *fakeMedia) Path(filename string) string { return "testdata/" + filename }

func (m *fakeMedia) Remove(filename string) error {
	delete(m.files, filename)
	return nil
}

type fakeNotify struct {
	texts    []string
	receipts []string
}

func (n *fakeNotify) Enabled() bool { return true }

func (n *fakeNotify) OrderText(_ context.Context, text string) {
	n.texts = append(n.texts, text)
}

func (n *fakeNotify) OrderReceipt(_ context.Context, fileID, _ string) {
	n.receipts = append(n.receipts, fileID)
}

type fakeFiles struct{}

func (fakeFiles) File(_ *tele.File) (io.ReadCloser, error) {
	return io.NopCloser(strings.NewReader("jpeg-bytes")), nil
}

type testEnv struct {
	h      *Handlers
	db     *fakeDB
	media  *fakeMedia
	notify *fakeNotify
	steps  wizard.Manager
}

func newTestEnv() *testEnv {
	db := newFakeDB()
	m := newFakeMedia()
	n := &fakeNotify{}
	steps := wizard.NewMemoryManager()
	h := New(Options{
		Users:        db,
		Catalog:      db,
		Cart:         db,
		Orders:       db,
		Media:        m,
		Steps:        steps,
		Notify:       n,
		Files:        fakeFiles{},
		ExchangeRate: decimal.NewFromInt(475),
	})
	return &testEnv{h: h, db: db, media: m, notify: n, steps: steps}
}

// seedProduct registers a product (and its category) in the fake catalog.
func (e *testEnv) seedProduct(name string, price int64) storage.Product {
	cat, err := e.db.InsertCategory(context.Background(), "Одежда")
	if err != nil {
		for _, c := range e.db.categories {
			if c.Name == "Одежда" {
				cat = c
			}
		}
	}
	p, _ := e.db.InsertProduct(context.Background(), storage.NewProduct{
		Name:       name,
		CategoryID: cat.ID,
		Price:      decimal.NewFromInt(price),
		Sizes:      storage.SizeList{"S", "M"},
	})
	return p
}

func (e *testEnv) seedUser(chatID int64) {
	e.db.users[chatID] = storage.User{ChatID: chatID, Username: "tester"}
}

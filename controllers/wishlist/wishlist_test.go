package wishlistControllers

import (
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	cartControllers "github.com/rakibtweets/booknest-sub000/controllers/cart"
	"github.com/rakibtweets/booknest-sub000/models"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{}, &models.Author{}, &models.Publisher{}, &models.Book{},
		&models.Cart{}, &models.CartItem{}, &models.WishlistItem{},
	))
	return db
}

func seedBook(t *testing.T, db *gorm.DB, title string, priceCents int64, stock int) models.Book {
	t.Helper()
	author := models.Author{Name: "Author of " + title}
	require.NoError(t, db.Create(&author).Error)
	publisher := models.Publisher{Name: "Publisher of " + title}
	require.NoError(t, db.Create(&publisher).Error)

	book := models.Book{
		Title:       title,
		ISBN:        "isbn-" + title,
		PriceCents:  priceCents,
		Stock:       stock,
		AuthorID:    author.ID,
		PublisherID: publisher.ID,
	}
	require.NoError(t, db.Create(&book).Error)
	return book
}

func seedUser(t *testing.T, db *gorm.DB, id string) models.User {
	t.Helper()
	user := models.User{ID: id, Email: id + "@example.com", Role: models.RoleUser}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func TestAddRejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1")
	book := seedBook(t, db, "The Name of the Wind", 1899, 3)

	_, err := Add(db, user.ID, book.ID)
	require.NoError(t, err)

	_, err = Add(db, user.ID, book.ID)
	require.ErrorIs(t, err, models.ErrAlreadyExists)
}

func TestAddUnknownBook(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1")

	_, err := Add(db, user.ID, 42)
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestMergeIntoCart(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1")
	inCart := seedBook(t, db, "Dune", 1299, 10)
	saved := seedBook(t, db, "Hyperion", 1499, 10)

	// One book already in the cart with quantity 2, both wishlisted.
	_, err := cartControllers.AddItem(db, user.ID, inCart.ID, 2)
	require.NoError(t, err)
	_, err = Add(db, user.ID, inCart.ID)
	require.NoError(t, err)
	_, err = Add(db, user.ID, saved.ID)
	require.NoError(t, err)

	require.NoError(t, MergeIntoCart(db, user.ID))

	view, err := cartControllers.View(db, user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 2)

	quantities := map[uint]int{}
	for _, item := range view.Items {
		quantities[item.BookID] = item.Quantity
	}
	require.Equal(t, 3, quantities[inCart.ID]) // incremented
	require.Equal(t, 1, quantities[saved.ID])  // inserted

	// Wishlist is emptied.
	var left int64
	require.NoError(t, db.Model(&models.WishlistItem{}).Where("user_id = ?", user.ID).Count(&left).Error)
	require.Equal(t, int64(0), left)
}

func TestMergeSkipsOutOfStockBooks(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1")
	gone := seedBook(t, db, "Out of Print", 999, 0)
	avail := seedBook(t, db, "In Print", 999, 5)

	_, err := Add(db, user.ID, gone.ID)
	require.NoError(t, err)
	_, err = Add(db, user.ID, avail.ID)
	require.NoError(t, err)

	require.NoError(t, MergeIntoCart(db, user.ID))

	view, err := cartControllers.View(db, user.ID)
	require.NoError(t, err)
	require.Len(t, view.Items, 1)
	require.Equal(t, avail.ID, view.Items[0].BookID)
}

func TestMergeEmptyWishlistIsNoop(t *testing.T) {
	db := newTestDB(t)
	user := seedUser(t, db, "u1")

	require.NoError(t, MergeIntoCart(db, user.ID))

	view, err := cartControllers.View(db, user.ID)
	require.NoError(t, err)
	require.Empty(t, view.Items)
}

package mongo

import (
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/shopfront/storefront/internal/core/domain"
)

func TestObjectID(t *testing.T) {
	oid := primitive.NewObjectID()

	got, err := objectID(oid.Hex(), domain.ErrProductNotFound)
	require.NoError(t, err)
	assert.Equal(t, oid, got)

	_, err = objectID("not-an-id", domain.ErrProductNotFound)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestOptionalObjectID(t *testing.T) {
	assert.Nil(t, optionalObjectID(""))
	assert.Nil(t, optionalObjectID("zzz"))

	oid := primitive.NewObjectID()
	ref := optionalObjectID(oid.Hex())
	require.NotNil(t, ref)
	assert.Equal(t, oid.Hex(), hexOrEmpty(ref))
	assert.Empty(t, hexOrEmpty(nil))
}

func TestContainsInsensitive_EscapesMetacharacters(t *testing.T) {
	re := containsInsensitive("a+b (x)")
	assert.Equal(t, "i", re.Options)

	compiled := regexp.MustCompile("(?i)" + re.Pattern)
	assert.True(t, compiled.MatchString("Deal: A+B (X) bundle"))
	assert.False(t, compiled.MatchString("aab x"))
}

func TestOrderOwnerFallback(t *testing.T) {
	doc := mongoOrder{ID: primitive.NewObjectID(), User: primitive.NewObjectID(), CreatedAt: time.Now()}
	assert.Equal(t, domain.UnknownOwner, doc.owner())

	doc.OwnerDoc = []mongoOwner{{Name: "Ann", Email: "ann@example.com"}}
	assert.Equal(t, domain.OrderOwner{Name: "Ann", Email: "ann@example.com"}, doc.owner())

	o := doc.toDomain()
	assert.Equal(t, domain.OrderPending, o.Status)
	assert.NotNil(t, o.Items)
}

func TestProductDocDefaults(t *testing.T) {
	doc := mongoProduct{ID: primitive.NewObjectID(), Name: "Boot"}
	p := doc.toDomain()
	assert.Equal(t, domain.StockInStock, p.StockStatus)
	assert.NotNil(t, p.Images)
	assert.NotNil(t, p.ColorVariants)
	assert.NotNil(t, p.SizeVariants)
	assert.Empty(t, p.CategoryID)
}

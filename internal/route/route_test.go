package route

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"thearchives/internal/catalog"
	"thearchives/internal/models"
	"thearchives/internal/search"
	"thearchives/internal/slug"
)

func loadResolver(t *testing.T) (*Resolver, *catalog.Store) {
	t.Helper()
	store, err := catalog.Load()
	require.NoError(t, err)
	return NewResolver(store), store
}

func TestBuilders(t *testing.T) {
	tests := []struct {
		name string
		got  string
		want string
	}{
		{"home", Home(), "/"},
		{"home all districts", HomeAllDistricts(), "/?districts=all#districts"},
		{"district", District("guntur"), "/district/guntur"},
		{"destinations", Destinations(), "/destinations"},
		{"destinations empty query", DestinationsQuery(""), "/destinations"},
		{"destinations query", DestinationsQuery("araku valley"), "/destinations?q=araku+valley"},
		{"destination", Destination("araku-valley"), "/destination/araku-valley"},
		{"hidden gems", HiddenGems(), "/hidden-gems"},
		{"location gems", LocationGems("paderu"), "/hidden-gems/paderu"},
		{"product", Product("araku-valley", "Araku Valley Coffee"), "/hidden-gems/araku-valley/araku-valley-coffee"},
		{"product punctuation", Product("paderu", "Honey (Wild)"), "/hidden-gems/paderu/honey-wild"},
		{"submit", SubmitGem(), "/hidden-gems/submit"},
		{"gallery", Gallery(), "/gallery"},
		{"location gallery", LocationGallery("lambasingi"), "/gallery/lambasingi"},
		{"about", About(), "/about"},
		{"search empty", Search(""), "/search"},
		{"search", Search("coffee"), "/search?q=coffee"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.got)
		})
	}
}

func TestResolveProduct(t *testing.T) {
	r, _ := loadResolver(t)

	d, p, err := r.Product("araku-valley", "araku-valley-coffee")
	require.NoError(t, err)
	assert.Equal(t, "Araku Valley", d.Name)
	assert.Equal(t, "Araku Valley Coffee", p.Name)
}

func TestResolveProduct_SlugCollisionFirstWins(t *testing.T) {
	doc := []byte(`
destinations:
  - id: maredumilli
    name: Maredumilli
    products:
      - name: Wild Honey
        type: famous
      - name: wild-honey!
        type: underrated
`)
	store, err := catalog.Parse(doc, nil)
	require.NoError(t, err)

	d, p, err := NewResolver(store).Product("maredumilli", "wild-honey")
	require.NoError(t, err)
	assert.Equal(t, "Maredumilli", d.Name)
	assert.Equal(t, "Wild Honey", p.Name)
	assert.Equal(t, models.ProductTypeFamous, p.Type)
}

func TestResolveProductNotFound(t *testing.T) {
	r, _ := loadResolver(t)

	d, _, err := r.Product("araku-valley", "not-a-real-slug")
	assert.ErrorIs(t, err, ErrProductNotFound)
	assert.Equal(t, "araku-valley", d.ID, "destination is still returned for context")

	_, _, err = r.Product("does-not-exist", "araku-valley-coffee")
	assert.ErrorIs(t, err, ErrDestinationNotFound)
	assert.False(t, errors.Is(err, ErrProductNotFound))
}

func TestResolveDestination(t *testing.T) {
	r, _ := loadResolver(t)

	d, err := r.Destination("lambasingi")
	require.NoError(t, err)
	assert.Equal(t, "Lambasingi", d.Name)

	_, err = r.Destination("does-not-exist")
	assert.ErrorIs(t, err, ErrDestinationNotFound)

	_, err = r.Destination("Lambasingi")
	assert.ErrorIs(t, err, ErrDestinationNotFound, "ids are case-sensitive")
}

func TestResolveDistrict(t *testing.T) {
	r, _ := loadResolver(t)

	d, err := r.District("guntur")
	require.NoError(t, err)
	assert.Equal(t, "Spices (Chilli & Turmeric)", d.AnchorProduct)

	_, err = r.District("atlantis")
	assert.ErrorIs(t, err, ErrDistrictNotFound)
	assert.False(t, errors.Is(err, ErrDestinationNotFound))
}

func TestProductRoundTrip(t *testing.T) {
	r, store := loadResolver(t)

	for _, d := range store.All() {
		seen := map[string]bool{}
		for _, p := range d.Products {
			path := Product(d.ID, p.Name)
			t.Run(path, func(t *testing.T) {
				target, err := r.Path(path)
				require.NoError(t, err)
				require.NotNil(t, target.Product)
				assert.Equal(t, KindProduct, target.Kind)
				assert.Equal(t, d.ID, target.Destination.ID)
				if !seen[slug.Generate(p.Name)] {
					assert.Equal(t, p.Name, target.Product.Name)
				}
				assert.Equal(t, path, target.Path())
			})
			seen[slug.Generate(p.Name)] = true
		}
	}
}

func TestPath(t *testing.T) {
	r, _ := loadResolver(t)

	tests := []struct {
		path    string
		kind    Kind
		dest    string
		wantErr error
	}{
		{"/destination/araku-valley", KindDestination, "araku-valley", nil},
		{"/destination/paderu/", KindDestination, "paderu", nil},
		{"/destination/does-not-exist", KindDestination, "", ErrDestinationNotFound},
		{"/hidden-gems/vanajangi", KindLocationGems, "vanajangi", nil},
		{"/hidden-gems/vanajangi?x=1", KindLocationGems, "vanajangi", nil},
		{"/gallery/maredumilli", KindLocationGallery, "maredumilli", nil},
		{"/hidden-gems/araku-valley/araku-valley-coffee", KindProduct, "araku-valley", nil},
		{"/hidden-gems/araku-valley/not-a-real-slug", KindProduct, "araku-valley", ErrProductNotFound},
		{"/about", "", "", ErrUnknownRoute},
		{"/destination", "", "", ErrUnknownRoute},
		{"/hidden-gems/a/b/c", "", "", ErrUnknownRoute},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			target, err := r.Path(tt.path)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			assert.Equal(t, tt.kind, target.Kind)
			assert.Equal(t, tt.dest, target.Destination.ID)
		})
	}
}

func TestFor(t *testing.T) {
	_, store := loadResolver(t)
	res := search.New(store).Search("araku")

	var paths []string
	for _, m := range res.Matches() {
		paths = append(paths, For(m))
	}
	assert.Equal(t, []string{
		"/destination/araku-valley",
		"/hidden-gems/araku-valley/araku-valley-coffee",
		"/hidden-gems/araku-valley/araku-black-pepper",
	}, paths)
}

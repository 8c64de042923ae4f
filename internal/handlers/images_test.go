package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maisonrony/shop_backend/internal/models"
)

func TestCreateImageDefaults(t *testing.T) {
	db := initTestDB(t)
	h := &ImageAdminHandler{DB: db}
	createCategory(t, db, "Perruques")

	rec, c := jsonRequest(t, http.MethodPost, "/api/admin/categories/1/images",
		map[string]interface{}{
			"url":      "https://cdn.example.com/lace.jpg",
			"publicId": "shop/lace",
			"nom":      "Perruque lace",
			"prix":     25000,
		})
	c.SetParamNames("categoryId")
	c.SetParamValues("1")
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var img models.Image
	require.NoError(t, db.First(&img).Error)
	require.True(t, img.EnStock)
	require.Equal(t, 1, img.Quantite)
	require.Equal(t, "FCFA", img.Devise)
	require.True(t, img.Actif)
	require.EqualValues(t, 1, img.CategorieID)
}

func TestCreateImageRequiresURLAndPublicID(t *testing.T) {
	db := initTestDB(t)
	h := &ImageAdminHandler{DB: db}
	createCategory(t, db, "Perruques")

	rec, c := jsonRequest(t, http.MethodPost, "/api/admin/categories/1/images",
		map[string]interface{}{"nom": "Sans fichier"})
	c.SetParamNames("categoryId")
	c.SetParamValues("1")
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCreateImageUnknownCategory(t *testing.T) {
	h := &ImageAdminHandler{DB: initTestDB(t)}

	rec, c := jsonRequest(t, http.MethodPost, "/api/admin/categories/99/images",
		map[string]interface{}{"url": "https://cdn.example.com/x.jpg", "publicId": "shop/x"})
	c.SetParamNames("categoryId")
	c.SetParamValues("99")
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateImageAllowList(t *testing.T) {
	db := initTestDB(t)
	h := &ImageAdminHandler{DB: db}
	cat := createCategory(t, db, "Perruques")
	img := createImage(t, db, cat.ID, "lace-1")

	rec, c := jsonRequest(t, http.MethodPut, "/api/admin/categories/images/1",
		map[string]interface{}{"prix": 30000, "enStock": false, "quantite": 0})
	c.SetParamNames("imageId")
	c.SetParamValues("1")
	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var reloaded models.Image
	require.NoError(t, db.First(&reloaded, img.ID).Error)
	require.Equal(t, float64(30000), reloaded.Prix)
	require.False(t, reloaded.EnStock)
	require.Equal(t, 0, reloaded.Quantite)
	require.Equal(t, img.URL, reloaded.URL, "url is not an updatable field")
}

func TestDeleteImageReturnsPublicID(t *testing.T) {
	db := initTestDB(t)
	h := &ImageAdminHandler{DB: db}
	cat := createCategory(t, db, "Perruques")
	createImage(t, db, cat.ID, "lace-1")

	rec, c := jsonRequest(t, http.MethodDelete, "/api/admin/categories/images/1", nil)
	c.SetParamNames("imageId")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	require.Equal(t, "shop/lace-1", body["publicId"])

	var count int64
	require.NoError(t, db.Model(&models.Image{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestReorderImages(t *testing.T) {
	db := initTestDB(t)
	h := &ImageAdminHandler{DB: db}
	cat := createCategory(t, db, "Perruques")
	a := createImage(t, db, cat.ID, "a")
	b := createImage(t, db, cat.ID, "b")
	ccc := createImage(t, db, cat.ID, "c")

	// An image from another category must not be touched even if listed.
	other := createCategory(t, db, "Soins")
	foreign := createImage(t, db, other.ID, "foreign")
	require.NoError(t, db.Model(foreign).Update("ordre", 7).Error)

	rec, c := jsonRequest(t, http.MethodPut, "/api/admin/categories/1/images/reorder",
		map[string]interface{}{"imageIds": []uint{ccc.ID, a.ID, b.ID, foreign.ID}})
	c.SetParamNames("categoryId")
	c.SetParamValues("1")
	require.NoError(t, h.Reorder(c))
	require.Equal(t, http.StatusOK, rec.Code)

	for i, id := range []uint{ccc.ID, a.ID, b.ID} {
		var img models.Image
		require.NoError(t, db.First(&img, id).Error)
		require.Equal(t, i, img.Ordre)
	}

	var untouched models.Image
	require.NoError(t, db.First(&untouched, foreign.ID).Error)
	require.Equal(t, 7, untouched.Ordre)
}

package handlers

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/maisonrony/shop_backend/internal/models"
)

func TestCreateCategoryDerivesSlug(t *testing.T) {
	db := initTestDB(t)
	h := &CategoryAdminHandler{DB: db}

	rec, c := jsonRequest(t, http.MethodPost, "/api/admin/categories",
		map[string]interface{}{"nom": "Crème Éclaircissante", "ordre": 2})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusCreated, rec.Code)

	var cat models.Category
	require.NoError(t, db.First(&cat).Error)
	require.Equal(t, "Crème Éclaircissante", cat.Nom)
	require.Equal(t, "creme-eclaircissante", cat.Slug)
	require.Equal(t, 2, cat.Ordre)
	require.True(t, cat.Actif)
}

func TestCreateCategoryDuplicateIsCaseInsensitive(t *testing.T) {
	db := initTestDB(t)
	h := &CategoryAdminHandler{DB: db}
	createCategory(t, db, "Perruques")

	rec, c := jsonRequest(t, http.MethodPost, "/api/admin/categories",
		map[string]interface{}{"nom": "PERRUQUES"})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Contains(t, rec.Body.String(), "existe déjà")
}

func TestCreateCategoryRequiresName(t *testing.T) {
	h := &CategoryAdminHandler{DB: initTestDB(t)}

	rec, c := jsonRequest(t, http.MethodPost, "/api/admin/categories",
		map[string]interface{}{"nom": "   "})
	require.NoError(t, h.Create(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateCategoryAllowList(t *testing.T) {
	db := initTestDB(t)
	h := &CategoryAdminHandler{DB: db}
	cat := createCategory(t, db, "Perruques")

	rec, c := jsonRequest(t, http.MethodPut, "/api/admin/categories/1",
		map[string]interface{}{"nom": "Perruques Naturelles", "actif": false})
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Update(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var reloaded models.Category
	require.NoError(t, db.First(&reloaded, cat.ID).Error)
	require.Equal(t, "Perruques Naturelles", reloaded.Nom)
	require.Equal(t, "perruques-naturelles", reloaded.Slug, "slug follows the renamed category")
	require.False(t, reloaded.Actif)
}

func TestDeleteCategoryGuardedByImages(t *testing.T) {
	db := initTestDB(t)
	h := &CategoryAdminHandler{DB: db}
	cat := createCategory(t, db, "Perruques")
	img := createImage(t, db, cat.ID, "lace-1")

	rec, c := jsonRequest(t, http.MethodDelete, "/api/admin/categories/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeBody(t, rec)
	require.EqualValues(t, 1, body["imageCount"])
	require.Contains(t, body["message"], "contient 1 image(s)")

	// Once the category is empty the delete goes through.
	require.NoError(t, db.Delete(img).Error)

	rec, c = jsonRequest(t, http.MethodDelete, "/api/admin/categories/1", nil)
	c.SetParamNames("id")
	c.SetParamValues("1")
	require.NoError(t, h.Delete(c))
	require.Equal(t, http.StatusOK, rec.Code)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Count(&count).Error)
	require.Zero(t, count)
}

func TestListCategoriesIncludesImageCount(t *testing.T) {
	db := initTestDB(t)
	h := &CategoryAdminHandler{DB: db}
	cat := createCategory(t, db, "Perruques")
	createImage(t, db, cat.ID, "lace-1")
	createImage(t, db, cat.ID, "lace-2")

	rec, c := jsonRequest(t, http.MethodGet, "/api/admin/categories", nil)
	require.NoError(t, h.List(c))
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody(t, rec)
	cats := body["categories"].([]interface{})
	require.Len(t, cats, 1)
	require.EqualValues(t, 2, cats[0].(map[string]interface{})["nombreImages"])
}

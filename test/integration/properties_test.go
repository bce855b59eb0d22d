package integration_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"propel_backend/internal/models"
	"propel_backend/test/helpers"
)

func TestProperties_CreateWithNestedDetails(t *testing.T) {
	ts := GetTestServer(t)
	_, jwt := ts.CreateAndLoginAccount(t, helpers.AccountFixture{})

	res, body := ts.SendRequest(t, http.MethodPost, "/properties", jwt, map[string]interface{}{
		"property_address": "221B Baker Street, London",
		"tenant_name":      "J. Smith",
		"inspector_name":   "A. Inspector",
		"smoke_alarm":      "Working",
		"property_details": []map[string]interface{}{
			{
				"name":            "Kitchen",
				"walls":           "Good condition",
				"property_images": []string{"/uploads/properties/2026-08/kitchen.jpg"},
			},
			{
				"name":  "Bedroom 1",
				"floor": "Carpet, worn",
			},
		},
	})
	require.Equal(t, http.StatusCreated, res.StatusCode, body)

	var created models.Property
	require.NoError(t, json.Unmarshal([]byte(body), &created))
	require.NotEmpty(t, created.ID)
	require.Len(t, created.PropertyDetails, 2)
	assert.Equal(t, "Kitchen", created.PropertyDetails[0].Name)
	require.Len(t, created.PropertyDetails[0].PropertyImages, 1)
	assert.Equal(t, "/uploads/properties/2026-08/kitchen.jpg", created.PropertyDetails[0].PropertyImages[0].URL)

	// Без адреса запись не принимается
	res, _ = ts.SendRequest(t, http.MethodPost, "/properties", jwt, map[string]interface{}{
		"tenant_name": "J. Smith",
	})
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
}

func TestProperties_ListIsScopedToOwner(t *testing.T) {
	ts := GetTestServer(t)
	owner, ownerJWT := ts.CreateAndLoginAccount(t, helpers.AccountFixture{})
	other, otherJWT := ts.CreateAndLoginAccount(t, helpers.AccountFixture{})

	mine := ts.CreateProperty(t, owner.ID, "1 Owner Lane")
	ts.CreateProperty(t, other.ID, "2 Other Lane")

	res, body := ts.SendRequest(t, http.MethodGet, "/properties", ownerJWT, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var listed []models.Property
	require.NoError(t, json.Unmarshal([]byte(body), &listed))
	for _, p := range listed {
		assert.Equal(t, owner.ID, p.AccountID)
	}
	assert.Contains(t, body, mine.PropertyAddress)
	assert.NotContains(t, body, "2 Other Lane")

	// Админ видит все записи
	_, adminJWT := ts.CreateAndLoginAccount(t, helpers.AccountFixture{Role: models.RoleAdmin})
	res, body = ts.SendRequest(t, http.MethodGet, "/properties", adminJWT, nil)
	require.Equal(t, http.StatusOK, res.StatusCode)
	assert.Contains(t, body, "1 Owner Lane")
	assert.Contains(t, body, "2 Other Lane")

	// Выборка по чужому аккаунту закрыта для обычного пользователя
	res, _ = ts.SendRequest(t, http.MethodGet, "/properties/user/"+owner.ID, otherJWT, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/properties/user/"+owner.ID, adminJWT, nil)
	assert.Equal(t, http.StatusOK, res.StatusCode)
}

func TestProperties_GetByIDOwnership(t *testing.T) {
	ts := GetTestServer(t)
	owner, ownerJWT := ts.CreateAndLoginAccount(t, helpers.AccountFixture{})
	_, strangerJWT := ts.CreateAndLoginAccount(t, helpers.AccountFixture{})

	property := ts.CreateProperty(t, owner.ID, "3 Private Close")

	res, body := ts.SendRequest(t, http.MethodGet, "/properties/"+property.ID, ownerJWT, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)
	assert.Contains(t, body, "3 Private Close")

	res, _ = ts.SendRequest(t, http.MethodGet, "/properties/"+property.ID, strangerJWT, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodGet, "/properties/00000000-0000-0000-0000-000000000000", ownerJWT, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestProperties_UpdateReplacesDetails(t *testing.T) {
	ts := GetTestServer(t)
	owner, jwt := ts.CreateAndLoginAccount(t, helpers.AccountFixture{})
	property := ts.CreateProperty(t, owner.ID, "4 Update Street")

	res, body := ts.SendRequest(t, http.MethodPut, "/properties/"+property.ID, jwt, map[string]interface{}{
		"property_address": "4 Update Street",
		"tenant_name":      "New Tenant",
		"property_details": []map[string]interface{}{
			{"name": "Bathroom", "ceiling": "Mould spots"},
		},
	})
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	var updated models.Property
	require.NoError(t, json.Unmarshal([]byte(body), &updated))
	assert.Equal(t, "New Tenant", updated.TenantName)

	// Комнаты заменяются целиком: прежняя Kitchen исчезла
	require.Len(t, updated.PropertyDetails, 1)
	assert.Equal(t, "Bathroom", updated.PropertyDetails[0].Name)

	var detailCount int64
	ts.DB.Model(&models.PropertyDetail{}).Where("property_id = ?", property.ID).Count(&detailCount)
	assert.EqualValues(t, 1, detailCount)
}

func TestProperties_Delete(t *testing.T) {
	ts := GetTestServer(t)
	owner, jwt := ts.CreateAndLoginAccount(t, helpers.AccountFixture{})
	_, strangerJWT := ts.CreateAndLoginAccount(t, helpers.AccountFixture{})

	property := ts.CreateProperty(t, owner.ID, "5 Demolition Row")

	res, _ := ts.SendRequest(t, http.MethodDelete, "/properties/"+property.ID, strangerJWT, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, body := ts.SendRequest(t, http.MethodDelete, "/properties/"+property.ID, jwt, nil)
	require.Equal(t, http.StatusOK, res.StatusCode, body)

	res, _ = ts.SendRequest(t, http.MethodGet, "/properties/"+property.ID, jwt, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestProperties_SendReportAccessControl(t *testing.T) {
	ts := GetTestServer(t)
	owner, _ := ts.CreateAndLoginAccount(t, helpers.AccountFixture{})
	_, strangerJWT := ts.CreateAndLoginAccount(t, helpers.AccountFixture{})

	property := ts.CreateProperty(t, owner.ID, "6 Report Road")

	// Чужую запись в отчет не отправить
	res, _ := ts.SendRequest(t, http.MethodPost, "/properties/"+property.ID+"/report", strangerJWT, nil)
	assert.Equal(t, http.StatusUnauthorized, res.StatusCode)

	res, _ = ts.SendRequest(t, http.MethodPost, "/properties/00000000-0000-0000-0000-000000000000/report", strangerJWT, nil)
	assert.Equal(t, http.StatusNotFound, res.StatusCode)
}

func TestProperties_UploadImage(t *testing.T) {
	ts := GetTestServer(t)
	_, jwt := ts.CreateAndLoginAccount(t, helpers.AccountFixture{})

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	part, err := writer.CreateFormFile("file", "photo.jpg")
	require.NoError(t, err)
	_, err = part.Write([]byte("fake-jpeg-bytes"))
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	req, err := http.NewRequest(http.MethodPost, ts.Server.URL+"/properties/upload", &buf)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+jwt)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	res, err := ts.Server.Client().Do(req)
	require.NoError(t, err)
	defer res.Body.Close()
	require.Equal(t, http.StatusCreated, res.StatusCode)

	var uploaded struct {
		URL string `json:"url"`
	}
	require.NoError(t, json.NewDecoder(res.Body).Decode(&uploaded))
	assert.Contains(t, uploaded.URL, "/uploads/properties/")

	// Без файла - 400
	resNoFile, _ := ts.SendRequest(t, http.MethodPost, "/properties/upload", jwt, nil)
	assert.Equal(t, http.StatusBadRequest, resNoFile.StatusCode)
}

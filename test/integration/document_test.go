package integration_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"fintrack_backend/test/helpers"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentUploadAndDownload(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, "upload@integration.test", "some_password_1")

	content := []byte("%PDF-1.4 form 16 for integration")
	upRes, upBody := ts.SendMultipart(t, "/api/v1/documents", token, "form16.pdf", "application/pdf", content, map[string]string{
		"document_type": "form16",
		"fiscal_year":   "2024-25",
		"notes":         "Employer form 16",
	})
	require.Equal(t, http.StatusCreated, upRes.StatusCode, upBody)

	var uploaded struct {
		ID           string `json:"id"`
		DocumentName string `json:"document_name"`
	}
	require.NoError(t, json.Unmarshal([]byte(upBody), &uploaded))
	assert.Equal(t, "form16.pdf", uploaded.DocumentName)

	// Round trip the file content.
	dlRes, dlBody := ts.SendRequest(t, "GET", "/api/v1/documents/"+uploaded.ID+"/download", token, nil)
	assert.Equal(t, http.StatusOK, dlRes.StatusCode)
	assert.Equal(t, string(content), dlBody)
	assert.Contains(t, dlRes.Header.Get("Content-Disposition"), "form16.pdf")

	listRes, listBody := ts.SendRequest(t, "GET", "/api/v1/documents?document_type=form16", token, nil)
	assert.Equal(t, http.StatusOK, listRes.StatusCode)
	assert.Contains(t, listBody, uploaded.ID)

	delRes, _ := ts.SendRequest(t, "DELETE", "/api/v1/documents/"+uploaded.ID, token, nil)
	assert.Equal(t, http.StatusOK, delRes.StatusCode)

	getRes, _ := ts.SendRequest(t, "GET", "/api/v1/documents/"+uploaded.ID, token, nil)
	assert.Equal(t, http.StatusNotFound, getRes.StatusCode)
}

func TestDocumentUpload_DisallowedType(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	token, _ := helpers.CreateAndLoginUser(t, ts, "badtype@integration.test", "some_password_1")

	res, body := ts.SendMultipart(t, "/api/v1/documents", token, "script.sh", "application/x-sh", []byte("#!/bin/sh"), nil)
	assert.Equal(t, http.StatusBadRequest, res.StatusCode)
	assert.Contains(t, body, "not allowed")
}

func TestDocument_ScopedToOwner(t *testing.T) {
	t.Parallel()

	ts := GetTestServer(t)
	ownerToken, _ := helpers.CreateAndLoginUser(t, ts, "docowner@integration.test", "some_password_1")
	otherToken, _ := helpers.CreateAndLoginUser(t, ts, "docother@integration.test", "some_password_1")

	upRes, upBody := ts.SendMultipart(t, "/api/v1/documents", ownerToken, "private.pdf", "application/pdf", []byte("%PDF-1.4 private"), nil)
	require.Equal(t, http.StatusCreated, upRes.StatusCode, upBody)

	var uploaded struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal([]byte(upBody), &uploaded))

	getRes, _ := ts.SendRequest(t, "GET", "/api/v1/documents/"+uploaded.ID, otherToken, nil)
	assert.Equal(t, http.StatusNotFound, getRes.StatusCode)

	dlRes, _ := ts.SendRequest(t, "GET", "/api/v1/documents/"+uploaded.ID+"/download", otherToken, nil)
	assert.Equal(t, http.StatusNotFound, dlRes.StatusCode)
}

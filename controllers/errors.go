package controllers

import (
	"errors"
	"log"
	"net/http"

	"project/services"
	"project/storage"
	"project/utils"
)

// WriteStoreError normalizes store and state-machine failures to the wire
// taxonomy: 404 for missing ids, 409 for lost compare-and-set races or
// duplicate unique keys, 400 for client mistakes, 500 (logged, generic body)
// for everything else. entity names the record for the caller-facing message.
func WriteStoreError(w http.ResponseWriter, err error, entity string) {
	switch {
	case errors.Is(err, storage.ErrNotFound):
		utils.WriteError(w, http.StatusNotFound, entity+" not found")
	case errors.Is(err, storage.ErrConflict):
		utils.WriteError(w, http.StatusConflict, entity+" already processed")
	case errors.Is(err, storage.ErrInsufficientBalance):
		utils.WriteError(w, http.StatusBadRequest, "Insufficient balance")
	case errors.Is(err, services.ErrInvalidAction):
		utils.WriteError(w, http.StatusBadRequest, "Action must be approve or reject")
	default:
		log.Printf("[error] %s: %v", entity, err)
		utils.WriteError(w, http.StatusInternalServerError, "Something went wrong")
	}
}

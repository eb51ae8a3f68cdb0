package handlers

import (
	"medibook/services/directory"
)

// DoctorHandler exposes the directory service over HTTP.
type DoctorHandler struct {
	Service directory.DirectoryService
}

func NewDoctorHandler(svc directory.DirectoryService) *DoctorHandler {
	return &DoctorHandler{Service: svc}
}

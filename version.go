package stepflow

// Version is the released version of stepflow.
const Version = "0.3.0"

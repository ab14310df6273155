package scoperec

// Specifies the scoperec version.
const Version = "0.4.0"

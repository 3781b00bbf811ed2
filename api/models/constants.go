package models

// Alphabet for generated submission ids.
var Alphabet = "0123456789abcdefghijklmnopqrstuvwxyz"

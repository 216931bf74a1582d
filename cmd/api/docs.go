package main

// @title Let's Eat API
// @version 1.0
// @description Picks a place to eat near the caller. Each session tracks its own location permission, cached fix and displayed place.

// @BasePath /
// @schemes http https

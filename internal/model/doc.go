// Package model is the chess rules engine: the board grid, per-piece move
// generation, move execution with castling, en passant and promotion, and check,
// checkmate and stalemate detection.
//
// A Match is driven through three commands (LegalMovesFrom, PerformMove and
// ResolvePromotion) and read through State. Every rejected command returns an
// error wrapping one of the Err sentinels and leaves the match unchanged.
package model

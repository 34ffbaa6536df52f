/**
 * Copyright 2025-present Coinbase Global, Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *  http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package constants declares the standard FIX tag numbers shared across the
// decoder, obfuscator, validator and summariser packages, so a tag's
// identity is spelled once rather than repeated as a bare literal at every
// call site.
package constants

import "github.com/quickfixgo/quickfix"

// --- Session / header tags ---
var (
	TagBeginString      = quickfix.Tag(8)
	TagBodyLength       = quickfix.Tag(9)
	TagMsgType          = quickfix.Tag(35)
	TagMsgSeqNum        = quickfix.Tag(34)
	TagSenderCompID     = quickfix.Tag(49)
	TagTargetCompID     = quickfix.Tag(56)
	TagSenderSubID      = quickfix.Tag(50)
	TagTargetSubID      = quickfix.Tag(57)
	TagOnBehalfOfCompID = quickfix.Tag(115)
	TagOnBehalfOfSubID  = quickfix.Tag(116)
	TagDeliverToCompID  = quickfix.Tag(128)
	TagDeliverToSubID   = quickfix.Tag(129)
	TagSendingTime      = quickfix.Tag(52)
	TagApplVerID        = quickfix.Tag(1128)
	TagDefaultApplVerID = quickfix.Tag(1137)
	TagCheckSum         = quickfix.Tag(10)
)

// --- Order identity tags ---
var (
	TagAccount     = quickfix.Tag(1)
	TagClOrdID     = quickfix.Tag(11)
	TagOrigClOrdID = quickfix.Tag(41)
	TagOrderID     = quickfix.Tag(37)
	TagExecID      = quickfix.Tag(17)
	TagUsername    = quickfix.Tag(553)
)

// --- Order economics tags ---
var (
	TagSide        = quickfix.Tag(54)
	TagSymbol      = quickfix.Tag(55)
	TagOrderQty    = quickfix.Tag(38)
	TagPrice       = quickfix.Tag(44)
	TagCurrency    = quickfix.Tag(15)
	TagTimeInForce = quickfix.Tag(59)
	TagOrdType     = quickfix.Tag(40)
	TagTradeDate   = quickfix.Tag(75)
	TagSettlDate   = quickfix.Tag(64)
	TagSettlDate2  = quickfix.Tag(193)
)

// --- Execution report tags ---
var (
	TagTransactTime = quickfix.Tag(60)
	TagOrdStatus    = quickfix.Tag(39)
	TagExecType     = quickfix.Tag(150)
	TagCumQty       = quickfix.Tag(14)
	TagLeavesQty    = quickfix.Tag(151)
	TagLastPx       = quickfix.Tag(31)
	TagAvgPx        = quickfix.Tag(6)
	TagText         = quickfix.Tag(58)
)

// --- Installation extension tags (the "BN" block-notice branch) ---
var (
	TagExecAckStatus = quickfix.Tag(1036)
)

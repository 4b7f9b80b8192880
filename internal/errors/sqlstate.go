/*
 * Copyright (c) 2026 Firefly Software Solutions Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

/*
Package errors provides SQLSTATE mappings so that engines consuming the
parser can report front-end failures with standard codes.

SQLSTATE is a 5-character code defined by SQL standards (ISO/IEC 9075).

Format: CCXXX where:
  - CC = Class (2 characters)
  - XXX = Subclass (3 characters)

Classes used by the front end:
  - 0A = Feature not supported
  - 22 = Data exception
  - 42 = Syntax error or access rule violation
  - 54 = Program limit exceeded
  - 57 = Operator intervention (cancellation)
  - 58 = System error (I/O)
  - F0 = Configuration file error
  - XX = Internal error
*/
package errors

// SQLSTATE represents a standard SQL state code.
type SQLSTATE string

// Standard SQLSTATE codes
const (
	SQLStateSuccess SQLSTATE = "00000"

	SQLStateFeatureNotSupported SQLSTATE = "0A000"

	SQLStateDataException    SQLSTATE = "22000"
	SQLStateInvalidCharValue SQLSTATE = "22018"

	SQLStateSyntaxAccessRule SQLSTATE = "42000"
	SQLStateSyntaxError      SQLSTATE = "42601"
	SQLStateReservedName     SQLSTATE = "42939"

	SQLStateProgramLimit    SQLSTATE = "54000"
	SQLStateQueryCanceled   SQLSTATE = "57014"
	SQLStateIOError         SQLSTATE = "58030"
	SQLStateConfigFileError SQLSTATE = "F0000"

	SQLStateInternalError SQLSTATE = "XX000"
	SQLStateDataCorrupted SQLSTATE = "XX001"
)

// sqlstateMap maps flyparse error codes to SQLSTATE codes.
var sqlstateMap = map[ErrorCode]SQLSTATE{
	ErrCodeLex:             SQLStateSyntaxError,
	ErrCodeUnclosedString:  SQLStateSyntaxError,
	ErrCodeUnexpectedChar:  SQLStateSyntaxError,
	ErrCodeInvalidOperator: SQLStateSyntaxError,

	ErrCodeSyntax:             SQLStateSyntaxError,
	ErrCodeUnexpectedToken:    SQLStateSyntaxError,
	ErrCodeMissingKeyword:     SQLStateSyntaxError,
	ErrCodeUnknownStatement:   SQLStateSyntaxError,
	ErrCodeIllegalClause:      SQLStateSyntaxError,
	ErrCodeDuplicateClause:    SQLStateSyntaxError,
	ErrCodeReservedWord:       SQLStateReservedName,
	ErrCodeExpectedExpression: SQLStateSyntaxError,
	ErrCodeMalformedColumn:    SQLStateSyntaxError,
	ErrCodeTrailingInput:      SQLStateSyntaxError,
	ErrCodeUnsupported:        SQLStateFeatureNotSupported,

	ErrCodeConfig:        SQLStateConfigFileError,
	ErrCodeConfigFile:    SQLStateConfigFileError,
	ErrCodeConfigInvalid: SQLStateConfigFileError,

	ErrCodeStorage:          SQLStateInternalError,
	ErrCodeIOError:          SQLStateIOError,
	ErrCodeArchiveCorrupted: SQLStateDataCorrupted,

	ErrCodeValidation:    SQLStateDataException,
	ErrCodeInvalidValue:  SQLStateInvalidCharValue,
	ErrCodeInputTooLarge: SQLStateProgramLimit,
	ErrCodeCanceled:      SQLStateQueryCanceled,
}

// ToSQLSTATE converts a flyparse error code to a SQLSTATE code.
func ToSQLSTATE(code ErrorCode) SQLSTATE {
	if state, ok := sqlstateMap[code]; ok {
		return state
	}
	return SQLStateInternalError
}

// GetSQLSTATE returns the SQLSTATE for an error. A nil error is success.
func GetSQLSTATE(err error) SQLSTATE {
	if err == nil {
		return SQLStateSuccess
	}
	if e, ok := asError(err); ok {
		return ToSQLSTATE(e.Code)
	}
	return SQLStateInternalError
}

// SQLSTATEClass returns the 2-character class of a SQLSTATE.
func SQLSTATEClass(state SQLSTATE) string {
	if len(state) >= 2 {
		return string(state[:2])
	}
	return "XX"
}

// IsErrorSQLSTATE returns true if the SQLSTATE indicates an error.
func IsErrorSQLSTATE(state SQLSTATE) bool {
	class := SQLSTATEClass(state)
	return class != "00" && class != "01" && class != "02"
}

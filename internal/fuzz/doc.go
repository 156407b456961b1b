// Package fuzztests houses Go fuzz harnesses for the comment pipeline
// (body -> parser -> diagnostics -> renderer). Its goal is to guard against
// panics, hangs and broken event invariants on arbitrary inputs.
//
// Назначение: загружать байты в FileSet и прогонять их через
// driver.ParseComment и cdocfmt.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
//
// Зависимости: internal/source, internal/cdoc, internal/cdocfmt,
// internal/driver, internal/testkit.
package fuzztests

package db

const schema = `
-- Performance and reliability settings
PRAGMA journal_mode = WAL;
PRAGMA synchronous = NORMAL;
PRAGMA foreign_keys = ON;
PRAGMA temp_store = MEMORY;

-- Runs: one row per recognition pass over a source document
CREATE TABLE IF NOT EXISTS runs (
    run_id INTEGER PRIMARY KEY AUTOINCREMENT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    source_path TEXT NOT NULL,
    entity TEXT NOT NULL,             -- lesson, chapter
    expected_count INTEGER NOT NULL,
    found_count INTEGER DEFAULT 0,
    coverage_pct REAL DEFAULT 0,
    status TEXT,                      -- COMPLETO, CASI_COMPLETO, EN_PROGRESO, PARCIAL, INICIAL
    integrity_ok BOOLEAN DEFAULT 0,
    duplicate_severity TEXT
);

CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at DESC);
CREATE INDEX IF NOT EXISTS idx_runs_entity ON runs(entity);

-- Lessons: accepted units of a run, content kept inline with its hash
CREATE TABLE IF NOT EXISTS lessons (
    lesson_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    number INTEGER NOT NULL,
    title TEXT,
    content TEXT,
    content_hash TEXT,
    word_count INTEGER DEFAULT 0,
    char_count INTEGER DEFAULT 0,
    position INTEGER DEFAULT 0,
    extraction_method TEXT,
    confidence REAL DEFAULT 0,
    quality_score REAL,
    quality_status TEXT,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE,
    UNIQUE(run_id, number)
);

CREATE INDEX IF NOT EXISTS idx_lessons_run ON lessons(run_id);
CREATE INDEX IF NOT EXISTS idx_lessons_number ON lessons(number);
CREATE INDEX IF NOT EXISTS idx_lessons_quality ON lessons(quality_score);

-- Issues: anything a run flagged for operator attention
CREATE TABLE IF NOT EXISTS issues (
    issue_id INTEGER PRIMARY KEY AUTOINCREMENT,
    run_id INTEGER NOT NULL,
    number INTEGER,                   -- unit number when applicable
    kind TEXT NOT NULL,               -- skipped, duplicate, quality, missing, warning
    severity TEXT,                    -- low, medium, high, critical
    detail TEXT,
    created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
    FOREIGN KEY (run_id) REFERENCES runs(run_id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_issues_run ON issues(run_id);
CREATE INDEX IF NOT EXISTS idx_issues_kind ON issues(kind);
`

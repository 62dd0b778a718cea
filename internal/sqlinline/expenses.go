package sqlinline

const QInsertExpense = `--sql 55ca9348-2d44-487b-982a-891da03d471f
insert into expenses(id, title, description, amount, category, date, created_at, updated_at)
values ($1::uuid, $2::text, nullif($3::text, ''), $4::numeric, $5::text, $6::timestamptz, $7::timestamptz, $7::timestamptz);
`

const QSelectExpenseByID = `--sql 6dfeb6e0-0842-470c-aa90-073a564da14f
select id::text, title, description, amount, category, date, created_at, updated_at
from expenses
where id = $1::uuid
limit 1;
`

const QListExpenses = `--sql a14aeb18-60dd-4ce0-9fa2-7933591be84a
select id::text, title, description, amount, category, date, created_at, updated_at
from expenses
order by date desc, created_at desc;
`

const QListExpensesBetween = `--sql baa353e5-cfaf-4b16-ab5c-17af31d9d10c
select id::text, title, description, amount, category, date, created_at, updated_at
from expenses
where date between $1::timestamptz and $2::timestamptz
order by date desc, created_at desc;
`

// QListExpensesPage treats null bounds as an unfiltered range.
const QListExpensesPage = `--sql 5b0e7b34-a58e-4618-8712-9b96c793c35b
select id::text, title, description, amount, category, date, created_at, updated_at
from expenses
where ($1::timestamptz is null or date >= $1::timestamptz)
  and ($2::timestamptz is null or date <= $2::timestamptz)
order by date desc, created_at desc
limit $3::int offset $4::int;
`

const QExpensesPageTotals = `--sql dc965eb9-2f28-45c4-b1f8-c31202017f93
select count(*)::int, coalesce(sum(amount), 0)::numeric
from expenses
where ($1::timestamptz is null or date >= $1::timestamptz)
  and ($2::timestamptz is null or date <= $2::timestamptz);
`

const QUpdateExpense = `--sql 0c6e821a-77f8-4cc6-bdb5-54a2174dea7e
update expenses
set title = $2::text,
    description = nullif($3::text, ''),
    amount = $4::numeric,
    category = $5::text,
    date = $6::timestamptz,
    updated_at = $7::timestamptz
where id = $1::uuid;
`

const QDeleteExpense = `--sql c830ac35-13a4-459c-816f-ecefd67cf342
delete from expenses
where id = $1::uuid;
`

package sqlinline

const QSumPaidByMonth = `--sql 9313f3ad-a7f3-4cd6-a3db-fa8134c31977
select coalesce(sum(amount), 0)::numeric
from monthly_payments
where month = $1::text
  and status = 'PAID';
`

const QCountPaymentsByMonthStatus = `--sql 184b3245-f853-47a4-ad0e-fa175e0c64c8
select count(*)::int
from monthly_payments
where month = $1::text
  and status = $2::text;
`

const QSumAllPaid = `--sql 34440f9d-94aa-4de2-9fbb-3641f626f3ea
select coalesce(sum(amount), 0)::numeric
from monthly_payments
where status = 'PAID';
`

const QSumExpensesBetween = `--sql e8be7e58-e6df-4cbf-b1bc-3d5196deef93
select coalesce(sum(amount), 0)::numeric
from expenses
where date between $1::timestamptz and $2::timestamptz;
`

const QSumAllExpenses = `--sql 078de131-263a-45e0-b3e8-a8dd6d38f0e3
select coalesce(sum(amount), 0)::numeric
from expenses;
`
